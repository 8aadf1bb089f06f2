package model

import (
	"math"
	"sort"
)

// TakeoffLine is the material quantity of one profile.
type TakeoffLine struct {
	Profile        string  `json:"profile"`
	Members        int     `json:"members"`
	TotalLength    float64 `json:"total_length"`     // m
	WeightPerMeter float64 `json:"weight_per_meter"` // kg/m
	Weight         float64 `json:"weight"`           // kg
}

// SteelTakeoff holds a steel purchasing estimate for a structure.
type SteelTakeoff struct {
	Lines         []TakeoffLine `json:"lines"`
	TotalLength   float64       `json:"total_length"`    // m
	TotalWeight   float64       `json:"total_weight"`    // kg
	TonnesExact   float64       `json:"tonnes_exact"`    // t before waste
	TonnesToOrder float64       `json:"tonnes_to_order"` // t rounded up to 0.1 t after waste
	WastePercent  float64       `json:"waste_percent"`   // e.g. 5 for 5%
	PricePerTonne float64       `json:"price_per_tonne"` // currency per t
	EstimatedCost float64       `json:"estimated_cost"`
	Unpriced      []string      `json:"unpriced"`        // profiles missing from the catalog
	Unassigned    int           `json:"unassigned"`      // members without a profile
}

// CalculateSteelTakeoff totals member lengths per profile and prices the
// resulting tonnage. Weights come from the member itself when set, else
// from the section catalog.
func CalculateSteelTakeoff(members []Beam3D, wastePercent, pricePerTonne float64) SteelTakeoff {
	byProfile := map[string]*TakeoffLine{}
	est := SteelTakeoff{WastePercent: wastePercent, PricePerTonne: pricePerTonne}
	missing := map[string]bool{}

	for _, m := range members {
		if m.Profile == "" {
			est.Unassigned++
			continue
		}
		line, ok := byProfile[m.Profile]
		if !ok {
			wpm := m.WeightPerMeter
			if wpm == 0 {
				if w, err := SectionWeight(m.Profile); err == nil {
					wpm = w
				} else {
					missing[m.Profile] = true
				}
			}
			line = &TakeoffLine{Profile: m.Profile, WeightPerMeter: wpm}
			byProfile[m.Profile] = line
		}
		line.Members++
		line.TotalLength += m.Length()
	}

	for _, line := range byProfile {
		line.Weight = line.TotalLength * line.WeightPerMeter
		est.TotalLength += line.TotalLength
		est.TotalWeight += line.Weight
		est.Lines = append(est.Lines, *line)
	}
	sort.Slice(est.Lines, func(i, j int) bool {
		return est.Lines[i].Profile < est.Lines[j].Profile
	})
	for p := range missing {
		est.Unpriced = append(est.Unpriced, p)
	}
	sort.Strings(est.Unpriced)

	est.TonnesExact = est.TotalWeight / 1000
	withWaste := est.TonnesExact * (1 + wastePercent/100)
	est.TonnesToOrder = math.Ceil(withWaste*10-1e-9) / 10
	est.EstimatedCost = est.TonnesToOrder * pricePerTonne
	return est
}
