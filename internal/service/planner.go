package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/set-night/agripay/internal/domain"
	"github.com/set-night/agripay/internal/i18n"
)

// PlanDetails is the crop planner form.
type PlanDetails struct {
	Crop     string
	Season   string
	LandSize string // hectares, free text
	Location string
}

// ParsePlanForm reads "crop | season | hectares | location". All four fields
// are required.
func ParsePlanForm(s string) (PlanDetails, error) {
	fields := strings.Split(s, "|")
	if len(fields) != 4 {
		return PlanDetails{}, domain.ErrInvalidPlanForm
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
		if fields[i] == "" {
			return PlanDetails{}, domain.ErrInvalidPlanForm
		}
	}
	return PlanDetails{
		Crop:     fields[0],
		Season:   fields[1],
		LandSize: fields[2],
		Location: fields[3],
	}, nil
}

func cropPlanPrompt(d PlanDetails) string {
	return fmt.Sprintf(`Create a detailed, week-by-week crop plan for a small-scale farmer.

**Farmer's Input:**
- Crop: %s
- Planting Season: %s
- Land Size: %s hectares
- Location: %s (provide advice tailored to this general region if possible)

**Your Task:**
Generate a plan covering the entire crop cycle from preparation to post-harvest.
For each stage (e.g., "Week 1-2: Soil Preparation", "Week 3: Planting", etc.), provide a list of key tasks and advice.

**Format:**
Use markdown. Start each stage with a '###' heading that includes the timeframe and title (e.g., '### Week 1-2: Soil Preparation').
Follow the heading with a bulleted list of actionable tasks for that period.
The plan should be practical and easy to follow.`, d.Crop, d.Season, d.LandSize, d.Location)
}

type PlanSection struct {
	Title   string
	Content string
}

// SplitPlanSections cuts a plan at its "### " headings. Text before the first
// heading is dropped.
func SplitPlanSections(plan string) []PlanSection {
	chunks := strings.Split(plan, "### ")
	if len(chunks) < 2 {
		return nil
	}
	sections := make([]PlanSection, 0, len(chunks)-1)
	for _, chunk := range chunks[1:] {
		title, body, _ := strings.Cut(chunk, "\n")
		sections = append(sections, PlanSection{
			Title:   strings.TrimSpace(title),
			Content: strings.TrimSpace(body),
		})
	}
	return sections
}

type CropPlanner interface {
	GenerateCropPlan(ctx context.Context, d PlanDetails, lang i18n.Language) Advice
}

// Planner serializes crop plan generation for one workspace.
type Planner struct {
	gen     CropPlanner
	running chan struct{}
}

func NewPlanner(gen CropPlanner) *Planner {
	return &Planner{gen: gen, running: make(chan struct{}, 1)}
}

// Generate runs one plan request. It returns ErrRequestInFlight if another is
// still running.
func (p *Planner) Generate(ctx context.Context, d PlanDetails, lang i18n.Language) (Advice, error) {
	select {
	case p.running <- struct{}{}:
	default:
		return Advice{}, domain.ErrRequestInFlight
	}
	defer func() { <-p.running }()

	return p.gen.GenerateCropPlan(ctx, d, lang), nil
}

func (p *Planner) Busy() bool {
	return len(p.running) > 0
}
