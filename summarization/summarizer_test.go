package summarization

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-lifeline/types"
)

func TestTemplateSummarizerDeterministic(t *testing.T) {
	d := types.Disaster{
		ID:                 "d-1",
		Title:              "Flash flood along the river basin",
		Description:        "Water levels rising rapidly after sustained rainfall.",
		DisasterType:       "flood",
		Severity:           types.Critical,
		Latitude:           13.7563,
		Longitude:          100.5018,
		AffectedPopulation: 25000,
		Status:             types.DisasterActive,
	}

	first, err := TemplateSummarizer{}.Summarize(context.Background(), d)
	require.NoError(t, err)
	second, err := TemplateSummarizer{}.Summarize(context.Background(), d)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "d-1", first.DisasterID)
	assert.Contains(t, first.Summary, "FLOOD EVENT")
	assert.Contains(t, first.Summary, "Severity: CRITICAL")
	assert.Len(t, first.KeyInsights, 4)
}

func TestTemplateSummarizerConfidence(t *testing.T) {
	base := types.Disaster{DisasterType: "earthquake", Status: types.DisasterActive}

	critical := base
	critical.Severity = types.Critical
	critical.AffectedPopulation = 10000
	got, err := TemplateSummarizer{}.Summarize(context.Background(), critical)
	require.NoError(t, err)
	// 0.7 + 1.0*0.2 + 1.0*0.1, population factor saturated
	assert.InDelta(t, 1.0, got.ConfidenceScore, 1e-9)

	low := base
	low.Severity = types.Low
	low.AffectedPopulation = 0
	got, err = TemplateSummarizer{}.Summarize(context.Background(), low)
	require.NoError(t, err)
	assert.InDelta(t, 0.78, got.ConfidenceScore, 1e-9)

	unknown := base
	unknown.Severity = types.Severity("weird")
	got, err = TemplateSummarizer{}.Summarize(context.Background(), unknown)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, got.ConfidenceScore, 1e-9)
}

func TestTemplateSummarizerRecommendations(t *testing.T) {
	d := types.Disaster{
		DisasterType:       "flood",
		Severity:           types.Low,
		AffectedPopulation: 50,
		Status:             types.DisasterActive,
	}

	got, err := TemplateSummarizer{}.Summarize(context.Background(), d)
	require.NoError(t, err)
	// low severity, small population: only the two always-on recommendations
	assert.Len(t, got.RecommendedActions, 2)

	d.Severity = types.High
	d.AffectedPopulation = 5000
	got, err = TemplateSummarizer{}.Summarize(context.Background(), d)
	require.NoError(t, err)
	assert.Len(t, got.RecommendedActions, 7)
}
