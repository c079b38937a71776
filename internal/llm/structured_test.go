package llm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDecision struct {
	Action string `json:"action"`
	Score  int    `json:"score"`
}

func TestExtractJSON_CleanObject(t *testing.T) {
	result, err := ExtractJSON[testDecision](`{"action":"UPDATE","score":75}`, nil)
	require.NoError(t, err)
	assert.Equal(t, "UPDATE", result.Action)
	assert.Equal(t, 75, result.Score)
}

func TestExtractJSON_FencedObject(t *testing.T) {
	raw := "```json\n{\"action\":\"REPLY\",\"score\":10}\n```"
	result, err := ExtractJSON[testDecision](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "REPLY", result.Action)
}

func TestExtractJSON_SurroundingProse(t *testing.T) {
	raw := "Sure! Here is the result:\n{\"action\":\"UPDATE\",\"score\":42}\nLet me know if you need more."
	result, err := ExtractJSON[testDecision](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, 42, result.Score)
}

func TestExtractJSON_NestedObjectsAndStrings(t *testing.T) {
	type nested struct {
		Stages []struct {
			Name string `json:"name"`
		} `json:"stages"`
	}
	raw := `{"stages":[{"name":"Foundation {phase 1}"},{"name":"Structure"}]}`
	result, err := ExtractJSON[nested](raw, nil)
	require.NoError(t, err)
	require.Len(t, result.Stages, 2)
	assert.Equal(t, "Foundation {phase 1}", result.Stages[0].Name)
}

func TestExtractJSON_NoObject(t *testing.T) {
	_, err := ExtractJSON[testDecision]("I could not produce a schedule.", nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_MalformedObject(t *testing.T) {
	_, err := ExtractJSON[testDecision](`{"action": broken}`, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_ValidatorRejects(t *testing.T) {
	validator := func(d testDecision) error {
		if d.Score > 100 {
			return fmt.Errorf("score %d out of range", d.Score)
		}
		return nil
	}
	_, err := ExtractJSON[testDecision](`{"action":"UPDATE","score":500}`, validator)
	assert.ErrorIs(t, err, ErrInvalidOutput)

	result, err := ExtractJSON[testDecision](`{"action":"UPDATE","score":50}`, validator)
	require.NoError(t, err)
	assert.Equal(t, 50, result.Score)
}
