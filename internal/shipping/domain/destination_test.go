package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDestinationCandidates(t *testing.T) {
	tests := []struct {
		name string
		dest Destination
		want []Candidate
	}{
		{
			name: "subdistrict preferred over district",
			dest: Destination{SubdistrictID: "123", DistrictID: "456"},
			want: []Candidate{
				{ID: "123", Label: "Kelurahan/Desa"},
				{ID: "456", Label: "Kecamatan"},
			},
		},
		{
			name: "district only",
			dest: Destination{DistrictID: "456"},
			want: []Candidate{{ID: "456", Label: "Kecamatan"}},
		},
		{
			name: "subdistrict only",
			dest: Destination{SubdistrictID: "123"},
			want: []Candidate{{ID: "123", Label: "Kelurahan/Desa"}},
		},
		{
			name: "duplicate identifiers collapse",
			dest: Destination{SubdistrictID: "789", DistrictID: "789"},
			want: []Candidate{{ID: "789", Label: "Kelurahan/Desa"}},
		},
		{
			name: "whitespace identifiers are ignored",
			dest: Destination{SubdistrictID: "  ", DistrictID: ""},
			want: nil,
		},
		{
			name: "empty destination yields no candidates",
			dest: Destination{},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dest.Candidates())
		})
	}
}

func TestIsSupportedCourier(t *testing.T) {
	for _, c := range Couriers() {
		assert.True(t, IsSupportedCourier(c.Code))
	}
	assert.False(t, IsSupportedCourier("gojek"))
	assert.False(t, IsSupportedCourier(""))
}
