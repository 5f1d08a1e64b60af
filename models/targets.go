package models

// Nutrient is the key of a daily target.
type Nutrient string

const (
	Protein    Nutrient = "protein"
	Fat        Nutrient = "fat"
	Sodium     Nutrient = "sodium"
	Potassium  Nutrient = "potassium"
	Magnesium  Nutrient = "magnesium"
	Iron       Nutrient = "iron"
	Zinc       Nutrient = "zinc"
	VitaminA   Nutrient = "vitamin_a"
	VitaminD   Nutrient = "vitamin_d"
	VitaminK2  Nutrient = "vitamin_k2"
	VitaminB12 Nutrient = "vitamin_b12"
	Choline    Nutrient = "choline"
	Iodine     Nutrient = "iodine"
)

// Nutrients lists every key of a NutrientTargetSet in display order.
var Nutrients = []Nutrient{
	Protein, Fat, Sodium, Potassium, Magnesium, Iron, Zinc,
	VitaminA, VitaminD, VitaminK2, VitaminB12, Choline, Iodine,
}

// Units per nutrient, as displayed by gauges.
var Units = map[Nutrient]string{
	Protein:    "g",
	Fat:        "g",
	Sodium:     "mg",
	Potassium:  "mg",
	Magnesium:  "mg",
	Iron:       "mg",
	Zinc:       "mg",
	VitaminA:   "mcg",
	VitaminD:   "IU",
	VitaminK2:  "mcg",
	VitaminB12: "mcg",
	Choline:    "mg",
	Iodine:     "mcg",
}

// NutrientTargetSet holds one daily target per nutrient. It is a plain value:
// copying it copies every target.
type NutrientTargetSet struct {
	Protein    float64 `json:"protein"`
	Fat        float64 `json:"fat"`
	Sodium     float64 `json:"sodium"`
	Potassium  float64 `json:"potassium"`
	Magnesium  float64 `json:"magnesium"`
	Iron       float64 `json:"iron"`
	Zinc       float64 `json:"zinc"`
	VitaminA   float64 `json:"vitamin_a"`
	VitaminD   float64 `json:"vitamin_d"`
	VitaminK2  float64 `json:"vitamin_k2"`
	VitaminB12 float64 `json:"vitamin_b12"`
	Choline    float64 `json:"choline"`
	Iodine     float64 `json:"iodine"`
}

func (s *NutrientTargetSet) field(n Nutrient) *float64 {
	switch n {
	case Protein:
		return &s.Protein
	case Fat:
		return &s.Fat
	case Sodium:
		return &s.Sodium
	case Potassium:
		return &s.Potassium
	case Magnesium:
		return &s.Magnesium
	case Iron:
		return &s.Iron
	case Zinc:
		return &s.Zinc
	case VitaminA:
		return &s.VitaminA
	case VitaminD:
		return &s.VitaminD
	case VitaminK2:
		return &s.VitaminK2
	case VitaminB12:
		return &s.VitaminB12
	case Choline:
		return &s.Choline
	case Iodine:
		return &s.Iodine
	}
	return nil
}

// Get returns the target for n, or 0 for an unknown key.
func (s NutrientTargetSet) Get(n Nutrient) float64 {
	if f := s.field(n); f != nil {
		return *f
	}
	return 0
}

// With returns a copy of s with the target for n replaced. Unknown keys are
// ignored.
func (s NutrientTargetSet) With(n Nutrient, v float64) NutrientTargetSet {
	if f := s.field(n); f != nil {
		*f = v
	}
	return s
}
