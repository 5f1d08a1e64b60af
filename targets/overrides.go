package targets

import "github.com/aguxez/carnitarget/models"

// ApplyOverrides replaces every target whose customization is manual with the
// user's value. A manual entry without a value leaves the computed target.
func ApplyOverrides(t models.NutrientTargetSet, custom map[models.Nutrient]models.Customization) models.NutrientTargetSet {
	for _, n := range models.Nutrients {
		c, ok := custom[n]
		if !ok || c.Mode != models.ModeManual || c.Value == nil {
			continue
		}
		t = t.With(n, *c.Value)
	}
	return t
}

// Overridden lists the nutrients the user has pinned manually.
func Overridden(custom map[models.Nutrient]models.Customization) []models.Nutrient {
	var out []models.Nutrient
	for _, n := range models.Nutrients {
		if c, ok := custom[n]; ok && c.Mode == models.ModeManual && c.Value != nil {
			out = append(out, n)
		}
	}
	return out
}
