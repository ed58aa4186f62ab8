package service

import (
	"context"
	"testing"
	"time"

	"github.com/set-night/agripay/internal/domain"
	"github.com/set-night/agripay/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlanForm(t *testing.T) {
	d, err := ParsePlanForm(" Maize | Rainy season | 2 | Kisumu, Kenya ")
	require.NoError(t, err)
	assert.Equal(t, PlanDetails{Crop: "Maize", Season: "Rainy season", LandSize: "2", Location: "Kisumu, Kenya"}, d)

	for _, bad := range []string{"", "Maize", "Maize | Rainy | 2", "Maize |  | 2 | Kisumu", "a | b | c | d | e"} {
		_, err := ParsePlanForm(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidPlanForm, bad)
	}
}

func TestSplitPlanSections(t *testing.T) {
	plan := "Here is your plan.\n\n### Week 1-2: Soil Preparation\n- Clear the field\n- Test soil\n\n### Week 3: Planting\n- Sow seeds\n"

	sections := SplitPlanSections(plan)
	require.Len(t, sections, 2)
	assert.Equal(t, "Week 1-2: Soil Preparation", sections[0].Title)
	assert.Equal(t, "- Clear the field\n- Test soil", sections[0].Content)
	assert.Equal(t, "Week 3: Planting", sections[1].Title)
	assert.Equal(t, "- Sow seeds", sections[1].Content)

	assert.Empty(t, SplitPlanSections("no headings here"))
	assert.Empty(t, SplitPlanSections(""))
}

type gatedPlanner struct {
	gate chan struct{}
}

func (g *gatedPlanner) GenerateCropPlan(context.Context, PlanDetails, i18n.Language) Advice {
	<-g.gate
	return Advice{Text: "### Week 1: Prep"}
}

func TestPlannerSingleFlight(t *testing.T) {
	gen := &gatedPlanner{gate: make(chan struct{})}
	p := NewPlanner(gen)

	done := make(chan Advice)
	go func() {
		advice, _ := p.Generate(context.Background(), PlanDetails{}, i18n.English)
		done <- advice
	}()

	require.Eventually(t, p.Busy, time.Second, 5*time.Millisecond)
	_, err := p.Generate(context.Background(), PlanDetails{}, i18n.English)
	assert.ErrorIs(t, err, domain.ErrRequestInFlight)

	close(gen.gate)
	assert.Equal(t, "### Week 1: Prep", (<-done).Text)
	assert.False(t, p.Busy())
}
