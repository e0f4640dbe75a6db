package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddressDestination(t *testing.T) {
	addr := &Address{
		SubdistrictID:   "123",
		SubdistrictName: "Sukamaju",
		DistrictID:      "456",
		DistrictName:    "Cilodong",
	}

	dest := addr.Destination()
	assert.Equal(t, "123", dest.SubdistrictID)
	assert.Equal(t, "456", dest.DistrictID)

	candidates := dest.Candidates()
	assert.Len(t, candidates, 2)
	assert.Equal(t, "123", candidates[0].ID)
}

func TestAddressCanShip(t *testing.T) {
	assert.True(t, (&Address{SubdistrictID: "123"}).CanShip())
	assert.True(t, (&Address{DistrictID: "456"}).CanShip())
	assert.False(t, (&Address{Street: "Jl. Melati 5"}).CanShip())
	assert.False(t, (&Address{SubdistrictID: "  "}).CanShip())
}

func TestAddressDisplayRegion(t *testing.T) {
	addr := &Address{
		SubdistrictName: "Sukamaju",
		DistrictName:    "Cilodong",
		CityName:        "Depok",
		ProvinceName:    "Jawa Barat",
	}
	assert.Equal(t, "Sukamaju, Cilodong, Depok, Jawa Barat", addr.DisplayRegion())

	partial := &Address{DistrictName: "Cilodong", CityName: "Depok"}
	assert.Equal(t, "Cilodong, Depok", partial.DisplayRegion())
}
