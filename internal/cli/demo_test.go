package cli

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemo_Text(t *testing.T) {
	stdout, _, err := executeCommand(t, "", "demo")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "demo", []byte(stdout))
}

func TestDemo_JSON(t *testing.T) {
	stdout, _, err := executeCommand(t, "", "demo", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Product struct {
				Expression string         `json:"expression"`
				Rendered   string         `json:"rendered"`
				Structure  map[string]any `json:"structure"`
			} `json:"product"`
			Quotient struct {
				Rendered  string         `json:"rendered"`
				Structure map[string]any `json:"structure"`
			} `json:"quotient"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))

	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "(7 - 4i) * (3 + 2i)", resp.Data.Product.Expression)
	assert.Equal(t, "29 + 2i", resp.Data.Product.Rendered)
	assert.Equal(t, "Complex", resp.Data.Product.Structure["tag"])
	assert.Equal(t, "1 - 2i", resp.Data.Quotient.Rendered)

	imag := resp.Data.Quotient.Structure["imag"].(map[string]any)
	num := imag["num"].(map[string]any)
	assert.Equal(t, "Negative", num["tag"])
}
