package kernel_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

func TestNewLocation(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lng     float64
		wantErr bool
		errType error
	}{
		{
			name:    "valid location",
			lat:     40.7128,
			lng:     -74.0060,
			wantErr: false,
		},
		{
			name:    "valid location at min bounds",
			lat:     kernel.LatitudeMin,
			lng:     kernel.LongitudeMin,
			wantErr: false,
		},
		{
			name:    "valid location at max bounds",
			lat:     kernel.LatitudeMax,
			lng:     kernel.LongitudeMax,
			wantErr: false,
		},
		{
			name:    "latitude too small",
			lat:     -90.5,
			lng:     0,
			wantErr: true,
			errType: errs.ErrValueIsOutOfRange,
		},
		{
			name:    "latitude too large",
			lat:     91,
			lng:     0,
			wantErr: true,
			errType: errs.ErrValueIsOutOfRange,
		},
		{
			name:    "longitude too small",
			lat:     0,
			lng:     -181,
			wantErr: true,
			errType: errs.ErrValueIsOutOfRange,
		},
		{
			name:    "longitude too large",
			lat:     0,
			lng:     180.01,
			wantErr: true,
			errType: errs.ErrValueIsOutOfRange,
		},
		{
			name:    "NaN latitude",
			lat:     math.NaN(),
			lng:     0,
			wantErr: true,
			errType: errs.ErrValueIsOutOfRange,
		},
		{
			name:    "both invalid",
			lat:     100,
			lng:     200,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := kernel.NewLocation(tt.lat, tt.lng)

			if tt.wantErr {
				require.Error(t, err)
				assert.Zero(t, loc)
				assert.True(t, errs.IsValidation(err))
				if tt.errType != nil {
					assert.ErrorIs(t, err, tt.errType)
				}
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.lat, loc.Lat(), 1e-9)
			assert.InDelta(t, tt.lng, loc.Lng(), 1e-9)
			assert.NoError(t, loc.Validate())
		})
	}

	t.Run("should report both coordinates when both are invalid", func(t *testing.T) {
		_, err := kernel.NewLocation(100, 200)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "latitude")
		assert.Contains(t, err.Error(), "longitude")
	})
}

func TestLocation_Validate(t *testing.T) {
	t.Run("valid location", func(t *testing.T) {
		loc := mustNewLocation(t, 1, 1)
		assert.NoError(t, loc.Validate())
	})

	t.Run("zero value location", func(t *testing.T) {
		var loc kernel.Location
		err := loc.Validate()
		assert.Equal(t, kernel.ErrLocationIsNotConstructed, err)
	})

	t.Run("origin is a valid constructed location", func(t *testing.T) {
		loc := mustNewLocation(t, 0, 0)
		assert.NoError(t, loc.Validate())
	})
}

func TestLocation_String(t *testing.T) {
	loc := mustNewLocation(t, 40.7128, -74.006)
	assert.Equal(t, "Location(40.712800,-74.006000)", loc.String())
}

func TestLocation_IsEqual(t *testing.T) {
	tests := []struct {
		name    string
		loc1    kernel.Location
		loc2    kernel.Location
		want    bool
		wantErr bool
	}{
		{
			name: "equal locations",
			loc1: mustNewLocation(t, 10, 20),
			loc2: mustNewLocation(t, 10, 20),
			want: true,
		},
		{
			name: "different latitude",
			loc1: mustNewLocation(t, 10.5, 20),
			loc2: mustNewLocation(t, 10, 20),
			want: false,
		},
		{
			name: "different longitude",
			loc1: mustNewLocation(t, 10, 20),
			loc2: mustNewLocation(t, 10, 20.5),
			want: false,
		},
		{
			name:    "first location invalid",
			loc1:    kernel.Location{},
			loc2:    mustNewLocation(t, 10, 20),
			wantErr: true,
		},
		{
			name:    "second location invalid",
			loc1:    mustNewLocation(t, 10, 20),
			loc2:    kernel.Location{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.loc1.IsEqual(tt.loc2)

			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestLocation_DistanceKm(t *testing.T) {
	tests := []struct {
		name    string
		loc1    kernel.Location
		loc2    kernel.Location
		want    float64
		delta   float64
		wantErr bool
	}{
		{
			name:  "same location",
			loc1:  mustNewLocation(t, 40.7128, -74.006),
			loc2:  mustNewLocation(t, 40.7128, -74.006),
			want:  0,
			delta: 1e-9,
		},
		{
			name:  "paris to london",
			loc1:  mustNewLocation(t, 48.8566, 2.3522),
			loc2:  mustNewLocation(t, 51.5074, -0.1278),
			want:  343.5,
			delta: 1.0,
		},
		{
			name:  "one degree of latitude along a meridian",
			loc1:  mustNewLocation(t, 0, 0),
			loc2:  mustNewLocation(t, 1, 0),
			want:  111.19,
			delta: 0.01,
		},
		{
			name:  "antipodal points",
			loc1:  mustNewLocation(t, 0, 0),
			loc2:  mustNewLocation(t, 0, 180),
			want:  math.Pi * 6371,
			delta: 0.01,
		},
		{
			name:    "first location invalid",
			loc1:    kernel.Location{},
			loc2:    mustNewLocation(t, 0, 0),
			wantErr: true,
		},
		{
			name:    "second location invalid",
			loc1:    mustNewLocation(t, 0, 0),
			loc2:    kernel.Location{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.loc1.DistanceKm(tt.loc2)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Zero(t, got)
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, tt.delta)
		})
	}
}

func TestLocation_DistanceProperties(t *testing.T) {
	points := []kernel.Location{
		mustNewLocation(t, 40.7128, -74.006),
		mustNewLocation(t, 34.0522, -118.2437),
		mustNewLocation(t, -33.8688, 151.2093),
		mustNewLocation(t, 55.7558, 37.6173),
	}

	t.Run("distance symmetry", func(t *testing.T) {
		for _, a := range points {
			for _, b := range points {
				ab, err := a.DistanceKm(b)
				require.NoError(t, err)
				ba, err := b.DistanceKm(a)
				require.NoError(t, err)

				assert.InDelta(t, ab, ba, 1e-6, "distance should be symmetric for %v and %v", a, b)
			}
		}
	})

	t.Run("triangle inequality", func(t *testing.T) {
		for _, a := range points {
			for _, b := range points {
				for _, c := range points {
					ac, _ := a.DistanceKm(c)
					ab, _ := a.DistanceKm(b)
					bc, _ := b.DistanceKm(c)

					assert.LessOrEqual(t, ac, ab+bc+1e-6)
				}
			}
		}
	})
}

func mustNewLocation(t *testing.T, lat, lng float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lng)
	require.NoError(t, err)
	return loc
}
