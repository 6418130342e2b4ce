package projections

import (
	"context"

	locationStore "coachsite/internal/adapters/storage/location"
	"coachsite/internal/application/listutil"
	locationDomain "coachsite/internal/domain/location"
)

// GetLocationListQuery carries query parameters for the venue table.
type GetLocationListQuery struct {
	Page    int
	PerPage int
}

// GetLocationListResult carries the query result. The venue table pages
// server-side like every other list.
type GetLocationListResult struct {
	Locations []locationDomain.Location
	PageInfo  listutil.PageInfo
}

// GetLocationListDeps holds dependencies for GetLocationList.
type GetLocationListDeps struct {
	LocationStore LocationStore
}

// QueryGetLocationList retrieves one page of venues ordered by name.
// PRE: Valid query parameters
// POST: Returns at most PerPage venues plus paging metadata
func QueryGetLocationList(ctx context.Context, query GetLocationListQuery, deps GetLocationListDeps) (GetLocationListResult, error) {
	total, err := deps.LocationStore.Count(ctx)
	if err != nil {
		return GetLocationListResult{}, err
	}

	info := listutil.NewPageInfo(query.Page, query.PerPage, total)
	locations, err := deps.LocationStore.List(ctx, locationStore.ListFilter{
		Limit:  info.PerPage,
		Offset: info.Offset(),
	})
	if err != nil {
		return GetLocationListResult{}, err
	}

	return GetLocationListResult{Locations: locations, PageInfo: info}, nil
}
