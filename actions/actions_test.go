package actions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-lifeline/types"
)

func testDisaster(severity types.Severity, population int) types.Disaster {
	return types.Disaster{
		ID:                 "d-1",
		Title:              "Flooding in riverside district",
		DisasterType:       "flood",
		Severity:           severity,
		AffectedPopulation: population,
	}
}

func TestGenerateCriticalEmitsFourActions(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	candidates := Generate(testDisaster(types.Critical, 10000), now)

	require.Len(t, candidates, 4)
	assert.Equal(t, types.Rescue, candidates[0].ActionType)
	assert.Equal(t, types.Medical, candidates[1].ActionType)
	assert.Equal(t, types.Logistics, candidates[2].ActionType)
	assert.Equal(t, types.Communication, candidates[3].ActionType)

	// impacts are fixed fractions of affected population
	assert.Equal(t, 3000, candidates[0].EstimatedImpact)
	assert.Equal(t, 4000, candidates[1].EstimatedImpact)
	assert.Equal(t, 6000, candidates[2].EstimatedImpact)
	assert.Equal(t, 10000, candidates[3].EstimatedImpact)

	// deadlines are relative offsets from generation time
	assert.Equal(t, now.Add(2*time.Hour), candidates[0].Deadline)
	assert.Equal(t, now.Add(4*time.Hour), candidates[1].Deadline)
	assert.Equal(t, now.Add(8*time.Hour), candidates[2].Deadline)
	assert.Equal(t, now.Add(6*time.Hour), candidates[3].Deadline)

	// at this population the clamp pins rescue and logistics to 100
	assert.Equal(t, 100, candidates[0].PriorityScore)
	assert.Equal(t, 100, candidates[2].PriorityScore)
}

func TestGenerateLowSeveritySkipsRescueAndMedical(t *testing.T) {
	candidates := Generate(testDisaster(types.Low, 50), time.Now())

	require.Len(t, candidates, 2)
	assert.Equal(t, types.Logistics, candidates[0].ActionType)
	assert.Equal(t, types.Communication, candidates[1].ActionType)
	for _, c := range candidates {
		assert.NotEqual(t, types.Rescue, c.ActionType)
		assert.NotEqual(t, types.Medical, c.ActionType)
	}
}

func TestGenerateHighSeverityEmitsFour(t *testing.T) {
	assert.Len(t, Generate(testDisaster(types.High, 1000), time.Now()), 4)
	assert.Len(t, Generate(testDisaster(types.Medium, 1000), time.Now()), 2)
}

func TestGenerateDeterministicContent(t *testing.T) {
	d := testDisaster(types.Critical, 2400)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	later := now.Add(3 * time.Hour)

	a := Generate(d, now)
	b := Generate(d, later)

	require.Equal(t, len(a), len(b))
	for i := range a {
		// only the absolute deadline differs between runs
		assert.Equal(t, a[i].ActionType, b[i].ActionType)
		assert.Equal(t, a[i].Description, b[i].Description)
		assert.Equal(t, a[i].EstimatedImpact, b[i].EstimatedImpact)
		assert.Equal(t, a[i].PriorityScore, b[i].PriorityScore)
		assert.Equal(t, a[i].Deadline.Add(3*time.Hour), b[i].Deadline)
	}
}
