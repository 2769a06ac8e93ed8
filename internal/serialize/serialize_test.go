package serialize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToJSONIsDeterministicAcrossKeyOrder(t *testing.T) {
	a := map[string]any{"zebra": 1, "apple": 2, "mango": 3}
	b := map[string]any{"mango": 3, "zebra": 1, "apple": 2}

	outA, err := ToJSON(a)
	require.NoError(t, err)
	outB, err := ToJSON(b)
	require.NoError(t, err)

	assert.Equal(t, string(outA), string(outB))
}

func TestToJSONIndentsByTwoSpaces(t *testing.T) {
	out, err := ToJSON(map[string]any{"a": map[string]any{"b": 1}})
	require.NoError(t, err)
	assert.Contains(t, string(out), "\n  \"a\": {\n    \"b\": 1\n  }")
}

func TestToJSONDoesNotEscapeHTML(t *testing.T) {
	out, err := ToJSON(map[string]any{"href": "<a href=\"x\">&</a>"})
	require.NoError(t, err)
	var roundTrip map[string]any
	require.NoError(t, json.Unmarshal(out, &roundTrip))
	assert.Equal(t, "<a href=\"x\">&</a>", roundTrip["href"])
}
