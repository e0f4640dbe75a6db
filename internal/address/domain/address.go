package domain

import (
	"strings"
	"time"

	shippingdomain "github.com/zahrafashion/storefront/internal/shipping/domain"
)

// Address is a saved delivery address. Area identifiers reference the rate
// oracle's region tables; names are denormalized for display.
type Address struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Label           string    `json:"label"`
	RecipientName   string    `json:"recipient_name"`
	Phone           string    `json:"phone"`
	Street          string    `json:"street"`
	ProvinceID      string    `json:"province_id"`
	ProvinceName    string    `json:"province_name"`
	CityID          string    `json:"city_id"`
	CityName        string    `json:"city_name"`
	DistrictID      string    `json:"district_id"`
	DistrictName    string    `json:"district_name"`
	SubdistrictID   string    `json:"subdistrict_id"`
	SubdistrictName string    `json:"subdistrict_name"`
	PostalCode      string    `json:"postal_code"`
	IsDefault       bool      `json:"is_default"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Destination maps the address onto the identifiers the shipping resolver
// understands.
func (a *Address) Destination() shippingdomain.Destination {
	return shippingdomain.Destination{
		SubdistrictID:   a.SubdistrictID,
		SubdistrictName: a.SubdistrictName,
		DistrictID:      a.DistrictID,
		DistrictName:    a.DistrictName,
	}
}

// CanShip reports whether the address carries at least one area identifier
// usable for a rate lookup.
func (a *Address) CanShip() bool {
	return strings.TrimSpace(a.SubdistrictID) != "" || strings.TrimSpace(a.DistrictID) != ""
}

// DisplayRegion renders the human-readable region line.
func (a *Address) DisplayRegion() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.SubdistrictName, a.DistrictName, a.CityName, a.ProvinceName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
