package location_test

import (
	"strings"
	"testing"

	"coachsite/internal/domain/location"
)

// TestLocationValidation tests validation of Location.
func TestLocationValidation(t *testing.T) {
	tests := []struct {
		name     string
		location location.Location
		wantErr  bool
	}{
		{
			name: "valid location",
			location: location.Location{
				Name: "Seminarhaus am Park", Street: "Parkstraße", HouseNumber: "12a",
				ZipCode: 79098, City: "Freiburg", MapsURL: "https://maps.example/x",
			},
			wantErr: false,
		},
		{
			name:     "optional fields omitted",
			location: location.Location{Name: "Gemeindehaus", City: "Freiburg"},
			wantErr:  false,
		},
		{
			name:     "empty name",
			location: location.Location{Name: " ", City: "Freiburg"},
			wantErr:  true,
		},
		{
			name:     "empty city",
			location: location.Location{Name: "Gemeindehaus", City: ""},
			wantErr:  true,
		},
		{
			name:     "negative zip",
			location: location.Location{Name: "Gemeindehaus", City: "Freiburg", ZipCode: -1},
			wantErr:  true,
		},
		{
			name: "remarks too long",
			location: location.Location{
				Name: "Gemeindehaus", City: "Freiburg",
				Remarks: strings.Repeat("x", 256),
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.location.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestAddress verifies the single-line address used in emails.
func TestAddress(t *testing.T) {
	l := location.Location{
		Name: "Seminarhaus", Street: "Parkstraße", HouseNumber: "12a",
		ZipCode: 79098, City: "Freiburg",
	}
	if got, want := l.Address(), "Parkstraße 12a, 79098 Freiburg"; got != want {
		t.Errorf("Address() = %q, want %q", got, want)
	}

	noZip := location.Location{Name: "Online", City: "Freiburg"}
	if got := noZip.Address(); got != ", Freiburg" {
		t.Errorf("Address() without street/zip = %q", got)
	}
}
