package llm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testInsight struct {
	HealthScore int      `json:"healthScore"`
	RiskAreas   []string `json:"riskAreas"`
}

func TestExtractJSON_CleanJSON(t *testing.T) {
	raw := `{"healthScore":82,"riskAreas":["scope creep"]}`
	result, err := ExtractJSON[testInsight](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, 82, result.HealthScore)
	assert.Equal(t, []string{"scope creep"}, result.RiskAreas)
}

func TestExtractJSON_FencedJSON(t *testing.T) {
	raw := "```json\n{\"healthScore\":65,\"riskAreas\":[]}\n```"
	result, err := ExtractJSON[testInsight](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, 65, result.HealthScore)
}

func TestExtractJSON_SurroundingProse(t *testing.T) {
	raw := "Here is my analysis of the project:\n{\"healthScore\":40,\"riskAreas\":[\"overdue tasks\"]}\nLet me know if you need more detail."
	result, err := ExtractJSON[testInsight](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, 40, result.HealthScore)
}

func TestExtractJSON_NestedObjects(t *testing.T) {
	type nested struct {
		HealthScore int `json:"healthScore"`
		Timeline    struct {
			PredictedCompletion string `json:"predictedCompletion"`
		} `json:"timeline"`
	}
	raw := `{"healthScore":70,"timeline":{"predictedCompletion":"2026-09-15"}}`
	result, err := ExtractJSON[nested](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "2026-09-15", result.Timeline.PredictedCompletion)
}

func TestExtractJSON_TopLevelArray(t *testing.T) {
	type genTask struct {
		Title    string `json:"title"`
		Priority string `json:"priority"`
	}
	raw := "Sure, here are the tasks:\n[{\"title\":\"Set up CI\",\"priority\":\"high\"},{\"title\":\"Write docs\",\"priority\":\"low\"}]"
	result, err := ExtractJSON[[]genTask](raw, nil)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Set up CI", result[0].Title)
	assert.Equal(t, "low", result[1].Priority)
}

func TestExtractJSON_BracesInsideStrings(t *testing.T) {
	raw := `{"healthScore":55,"riskAreas":["config uses {placeholders} in braces"]}`
	result, err := ExtractJSON[testInsight](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "config uses {placeholders} in braces", result.RiskAreas[0])
}

func TestExtractJSON_NoJSON(t *testing.T) {
	raw := "I cannot analyze this project."
	_, err := ExtractJSON[testInsight](raw, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_UnbalancedJSON(t *testing.T) {
	raw := `{"healthScore":82,"riskAreas":["truncated`
	_, err := ExtractJSON[testInsight](raw, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_InvalidJSON(t *testing.T) {
	raw := `{"healthScore": broken}`
	_, err := ExtractJSON[testInsight](raw, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_LineComments(t *testing.T) {
	raw := "{\n  \"healthScore\": 75, // looks healthy\n  \"riskAreas\": []\n}"
	result, err := ExtractJSON[testInsight](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, 75, result.HealthScore)
}

func TestExtractJSON_LeadingDecimal(t *testing.T) {
	type conf struct {
		Confidence float64 `json:"confidence"`
	}
	raw := `{"confidence": .85}`
	result, err := ExtractJSON[conf](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.85, result.Confidence)
}

func TestExtractJSON_ValidationFailure(t *testing.T) {
	raw := `{"healthScore":250,"riskAreas":[]}`
	validator := func(i testInsight) error {
		if i.HealthScore < 0 || i.HealthScore > 100 {
			return fmt.Errorf("healthScore must be in [0,100], got %d", i.HealthScore)
		}
		return nil
	}
	_, err := ExtractJSON(raw, validator)
	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestExtractJSON_ValidationSuccess(t *testing.T) {
	raw := `{"healthScore":90,"riskAreas":[]}`
	validator := func(i testInsight) error {
		if i.HealthScore < 0 || i.HealthScore > 100 {
			return fmt.Errorf("healthScore out of range")
		}
		return nil
	}
	result, err := ExtractJSON(raw, validator)
	require.NoError(t, err)
	assert.Equal(t, 90, result.HealthScore)
}
