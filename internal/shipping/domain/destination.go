package domain

import "strings"

// Destination carries the area identifiers of a delivery address at the two
// granularities the rate oracle understands.
type Destination struct {
	SubdistrictID   string `json:"subdistrict_id"`
	SubdistrictName string `json:"subdistrict_name,omitempty"`
	DistrictID      string `json:"district_id"`
	DistrictName    string `json:"district_name,omitempty"`
}

// Candidate is one destination identifier to try against the rate oracle.
type Candidate struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Candidates orders the oracle lookups for this destination: the subdistrict
// first because it rates most precisely, then the district as a fallback when
// the oracle has no coverage at subdistrict level. Duplicate identifiers are
// collapsed so the same area is never queried twice. An empty slice means the
// address is too incomplete to rate.
func (d Destination) Candidates() []Candidate {
	var out []Candidate
	seen := make(map[string]struct{}, 2)

	add := func(id, label string) {
		id = strings.TrimSpace(id)
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, Candidate{ID: id, Label: label})
	}

	add(d.SubdistrictID, "Kelurahan/Desa")
	add(d.DistrictID, "Kecamatan")
	return out
}
