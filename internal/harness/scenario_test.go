package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshforge/csgkit/internal/ir"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "punched-block.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "punched-block", scenario.Name)
	assert.Equal(t, "scenario-punched-block", scenario.SessionToken)
	require.NotNil(t, scenario.CharacteristicLengthMax)
	assert.Equal(t, 0.5, *scenario.CharacteristicLengthMax)
	assert.Len(t, scenario.Steps, 5)
}

func TestLoadScenario_RejectsUnknownFields(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: misspelled steps key
stepz:
  - synchronize: true
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse scenario YAML")
}

func TestLoadScenario_RequiresNameAndDescription(t *testing.T) {
	path := writeScenario(t, `
name: unnamed
steps:
  - synchronize: true
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "description is required")
}

func TestLoadScenario_RejectsAmbiguousStep(t *testing.T) {
	path := writeScenario(t, `
name: ambiguous
description: one step claims to be both an add and a flush
steps:
  - add: a
    shape: ball
    params: [0, 0, 0, 1]
    flush: true
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of")
}

func TestScenarioPlan(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "fragment-surfaces.yaml"))
	require.NoError(t, err)

	plan, err := scenario.Plan()
	require.NoError(t, err)

	assert.Equal(t, "fragment-surfaces", plan.Name)
	require.Len(t, plan.Steps, 4)
	assert.Equal(t, ir.StepAdd, plan.Steps[0].Kind)
	assert.Equal(t, ir.KindRectangle, plan.Steps[0].Shape)
	assert.Equal(t, ir.StepSynchronize, plan.Steps[2].Kind)

	boolean := plan.Steps[3]
	assert.Equal(t, ir.ActionFragments, boolean.Action)
	assert.True(t, boolean.KeepInput)
	assert.False(t, boolean.KeepTool)
}

func TestScenarioPlan_ValidatesStructure(t *testing.T) {
	scenario := &Scenario{
		Name:        "dangling",
		Description: "references a label never bound",
		Steps: []StepSpec{
			{Add: "a", Shape: "ball", Params: []float64{0, 0, 0, 1}},
			{Boolean: "out", Action: "union", Inputs: []string{"a", "ghost"}},
		},
	}
	_, err := scenario.Plan()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unbound label")
}
