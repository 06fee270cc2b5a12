package mockdata

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-lifeline/types"
)

func writeTestData(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	write := func(name string, reports []types.MockDisaster) {
		data, err := json.Marshal(reports)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}

	flood := types.MockDisaster{Source: "gauge", Severity: "high", DisasterType: "flood", Message: "water rising"}
	flood.Location.Name = "Riverside"
	quake := types.MockDisaster{Source: "usgs", Severity: "critical", DisasterType: "earthquake", Message: "m6.1 shock"}
	quake.Location.Name = "Valley"
	social := types.MockDisaster{Source: "Twitter feed", Severity: "low", DisasterType: "storm", Message: "branches down"}
	social.Location.Name = "Lakeside"

	write("flood-alerts.json", []types.MockDisaster{flood, flood})
	write("earthquake-alerts.json", []types.MockDisaster{quake})
	write("social-media-alerts.json", []types.MockDisaster{social})
	return dir
}

func TestLoadCategory(t *testing.T) {
	loader := NewLoader(writeTestData(t))

	floods, err := loader.Load("floods")
	require.NoError(t, err)
	assert.Len(t, floods, 2)
	assert.Equal(t, "flood", floods[0].DisasterType)
}

func TestLoadAll(t *testing.T) {
	loader := NewLoader(writeTestData(t))

	all, err := loader.Load(CategoryAll)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestLoadInvalidCategory(t *testing.T) {
	loader := NewLoader(writeTestData(t))

	_, err := loader.Load("tornadoes")
	assert.ErrorIs(t, err, types.ErrValidation)
	assert.False(t, ValidCategory("tornadoes"))
	assert.True(t, ValidCategory("floods"))
	assert.True(t, ValidCategory(CategoryAll))
}

func TestAvailable(t *testing.T) {
	loader := NewLoader(writeTestData(t))

	info, total, err := loader.Available()
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Equal(t, 2, info["floods"].Count)
	assert.Equal(t, []string{"Valley"}, info["earthquakes"].Locations)
}

func TestLoadMissingFile(t *testing.T) {
	loader := NewLoader(t.TempDir())
	_, err := loader.Load("floods")
	assert.Error(t, err)
}
