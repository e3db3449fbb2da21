package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shoesFixture = filepath.Join("..", "fixture", "testdata", "shoes.yaml")

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "today")
	t.Cleanup(func() { SetVersionInfo("dev", "unknown", "unknown") })

	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "payload-distance 1.2.3")
	assert.Contains(t, out, "commit: abc123")
}

func TestScoreCommand_Table(t *testing.T) {
	out, err := runCommand(t, "score", "--fixture", shoesFixture, "--strategy", "ratio")
	require.NoError(t, err)

	assert.Contains(t, out, "Strategy: difference")
	assert.Contains(t, out, "RANK")
	assert.Contains(t, out, "unscored")
	assert.Contains(t, out, "-8.0000")
	assert.Contains(t, out, "yes", "fallback documents are flagged")
}

func TestScoreCommand_JSON(t *testing.T) {
	out, err := runCommand(t, "score", "-f", shoesFixture, "--strategy", "difference", "-o", "json")
	require.NoError(t, err)

	var body struct {
		Strategy string `json:"strategy"`
		Results  []struct {
			ID       string  `json:"id"`
			Score    float64 `json:"score"`
			Fallback bool    `json:"base_score_fallback"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, "difference", body.Strategy)
	require.Len(t, body.Results, 3)
	assert.Equal(t, "unscored", body.Results[0].ID)
	assert.True(t, body.Results[0].Fallback)
	assert.InDelta(t, -1.0, body.Results[1].Score, 1e-12)
}

func TestScoreCommand_DefaultStrategyFromEnvironment(t *testing.T) {
	t.Setenv("PAYLOAD_DISTANCE_STRATEGY", "difference")
	dir := t.TempDir()
	fixturePath := filepath.Join(dir, "default.yaml")
	require.NoError(t, os.WriteFile(fixturePath, []byte(`
script:
  name: payload_distance_score
  params:
    fields:
      - field: color
        term_values: {red: 4}
documents:
  - id: a
    base_score: 1
    payloads:
      color: {red: 2}
`), 0600))

	out, err := runCommand(t, "score", "-f", fixturePath, "-o", "json", "--env-file", filepath.Join(dir, "absent.env"))
	require.NoError(t, err)
	assert.Contains(t, out, `"strategy": "difference"`)
	assert.Contains(t, out, `"score": -2`)
}

func TestScoreCommand_Errors(t *testing.T) {
	_, err := runCommand(t, "score")
	assert.Error(t, err, "--fixture is required")

	_, err = runCommand(t, "score", "-f", shoesFixture, "-o", "xml", "--strategy", "ratio")
	assert.Error(t, err)

	_, err = runCommand(t, "score", "-f", shoesFixture, "--strategy", "nearest")
	assert.Error(t, err)

	_, err = runCommand(t, "score", "-f", filepath.Join(t.TempDir(), "absent.yaml"), "--strategy", "ratio")
	assert.Error(t, err)
}
