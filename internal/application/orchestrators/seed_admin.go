package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	accountDomain "coachsite/internal/domain/account"
)

// AccountStoreForSeed defines the store interface needed by SeedAdmin.
type AccountStoreForSeed interface {
	Save(ctx context.Context, a accountDomain.Account) error
	Count(ctx context.Context) (int, error)
}

// SeedAdminInput carries the initial operator credentials, from environment.
type SeedAdminInput struct {
	Email    string
	Password string
}

// SeedAdminDeps holds dependencies for SeedAdmin.
type SeedAdminDeps struct {
	AccountStore AccountStoreForSeed
	Now          func() time.Time
}

// ExecuteSeedAdmin creates the operator account on first startup.
// The site has a single administrator, so an existing account means no-op.
// PRE: Email and Password come from trusted configuration
// POST: Exactly one account exists afterwards; returns true if one was created
func ExecuteSeedAdmin(ctx context.Context, input SeedAdminInput, deps SeedAdminDeps) (bool, error) {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	count, err := deps.AccountStore.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	acct := accountDomain.Account{
		ID:        uuid.New().String(),
		Email:     input.Email,
		CreatedAt: now(),
	}
	if err := acct.Validate(); err != nil {
		return false, err
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return false, err
	}

	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return false, err
	}

	slog.Info("auth_event", "event", "admin_seeded", "email", acct.Email)
	return true, nil
}
