package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/memory"
	"github.com/tmc/langchaingo/prompts"
	"go.uber.org/zap"

	"github.com/aguxez/carnitarget/models"
	"github.com/aguxez/carnitarget/targets"
)

// MealPlanAgent asks an LLM for a carnivore meal plan that meets a day's
// nutrient targets, remembering its last few plans.
type MealPlanAgent struct {
	chain        *chains.LLMChain
	bufferMemory *memory.ConversationWindowBuffer
	logger       *zap.Logger
}

type FoodCategory string

const (
	Breakfast FoodCategory = "breakfast"
	Lunch     FoodCategory = "lunch"
	Dinner    FoodCategory = "dinner"
	Snack     FoodCategory = "snack"
)

type MealPlanFood struct {
	Food            string       `json:"food"`
	Weight          string       `json:"weight"`
	Nutrients       string       `json:"nutrients"`
	FoodExplanation string       `json:"foodExplanation"`
	FoodCategory    FoodCategory `json:"foodCategory"`
}

type MealPlanResponse struct {
	Plan            []MealPlanFood `json:"plan"`
	PlanExplanation string         `json:"planExplanation"`
	Supplements     string         `json:"supplements"`
}

// PlanRequest is the day the plan is for.
type PlanRequest struct {
	Date       string
	Targets    models.NutrientTargetSet
	Factors    []targets.Factor
	Overridden []models.Nutrient
}

const promptTemplate = `
You are a nutritionist who plans strictly carnivore days: meat, fish, eggs,
organ meats, animal fats, bone broth, salt and water only.

{{.CombinedInput}}

Please generate a one-day meal plan that:
1. Meets each nutrient target as closely as possible, favouring whole foods
   over supplements.
2. Uses organ meats or seafood where a mineral or vitamin target cannot be met
   with muscle meat alone.
3. Respects pinned targets exactly; they were set by the user.
4. Varies from the previous plans listed in the history.

Provide portions in grams and the main nutrients each food contributes.

Stick to this JSON format for the output.

{
	"plan": [
		{
			"food": string, // The food name
			"weight": string, // The weight of the food in grams
			"nutrients": string // The targets this food covers and by how much,
			"foodExplanation": string // Why this food was chosen,
			"foodCategory": string // The time of the meal
		}
	],
	"planExplanation": string // Explanation of the plan in markdown.
	"supplements": string // Any gap left after food, in markdown. Empty if none.
}

"foodCategory" must be one of breakfast, lunch, dinner, or snack.
`

func NewMealPlanAgent(llm llms.Model, memorySize int, logger *zap.Logger) *MealPlanAgent {
	chain := chains.NewLLMChain(
		llm,
		prompts.NewPromptTemplate(promptTemplate, []string{"CombinedInput"}),
	)

	return &MealPlanAgent{
		chain:        chain,
		bufferMemory: memory.NewConversationWindowBuffer(memorySize),
		logger:       logger,
	}
}

func (a *MealPlanAgent) GenerateMealPlan(ctx context.Context, req PlanRequest) (MealPlanResponse, error) {
	history, err := a.bufferMemory.LoadMemoryVariables(ctx, map[string]any{})
	if err != nil {
		return MealPlanResponse{}, fmt.Errorf("loading memory variables: %w", err)
	}

	input := map[string]any{
		"CombinedInput": fmt.Sprintf("%s\nHistory: %v", DescribeTargets(req), history["history"]),
	}

	result, err := chains.Call(ctx, a.chain, input)
	if err != nil {
		return MealPlanResponse{}, fmt.Errorf("calling chain: %w", err)
	}

	if err := a.bufferMemory.SaveContext(ctx, input, result); err != nil {
		a.logger.Warn("saving meal plan to memory", zap.Error(err))
	}

	text, ok := result["text"].(string)
	if !ok {
		return MealPlanResponse{}, fmt.Errorf("unexpected chain output %T", result["text"])
	}

	var plan MealPlanResponse
	if err := json.Unmarshal([]byte(stripMarkup(text)), &plan); err != nil {
		return MealPlanResponse{}, fmt.Errorf("unmarshalling response: %w", err)
	}

	a.logger.Info("meal plan generated", zap.String("date", req.Date), zap.Int("foods", len(plan.Plan)))
	return plan, nil
}

// DescribeTargets renders the request as prompt text, one target per line.
func DescribeTargets(req PlanRequest) string {
	pinned := make(map[models.Nutrient]bool, len(req.Overridden))
	for _, n := range req.Overridden {
		pinned[n] = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Targets for %s:\n", req.Date)
	for _, n := range models.Nutrients {
		fmt.Fprintf(&b, "- %s: %g %s", n, req.Targets.Get(n), models.Units[n])
		if pinned[n] {
			b.WriteString(" (pinned)")
		}
		b.WriteString("\n")
	}
	if len(req.Factors) > 0 {
		b.WriteString("Adjusted today because of:")
		seen := make(map[string]bool)
		for _, f := range req.Factors {
			if !seen[f.Source] {
				seen[f.Source] = true
				fmt.Fprintf(&b, " %s", f.Source)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// stripMarkup removes line breaks and markdown fences around the JSON body.
func stripMarkup(s string) string {
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "```json", "")
	return strings.ReplaceAll(s, "```", "")
}
