package targets

import "github.com/aguxez/carnitarget/models"

// Result is the full computation for one profile and day.
type Result struct {
	Base    models.NutrientTargetSet `json:"base"`
	Final   models.NutrientTargetSet `json:"final"`
	Factors []Factor                 `json:"factors"`
}

// Compute runs base resolution, daily adjustment and a trailing manual
// override pass, so pinned values survive the daily layer as well.
func Compute(p models.UserProfile, status *models.DailyStatus) Result {
	base := ResolveBaseTargets(p, p.Weight)
	adjusted, factors := adjust(base, status, p.Weight)
	return Result{
		Base:    base,
		Final:   ApplyOverrides(adjusted, p.CustomNutrientTargets),
		Factors: factors,
	}
}
