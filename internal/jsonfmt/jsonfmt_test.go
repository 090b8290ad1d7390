package jsonfmt

import (
	"encoding/json"
	"testing"

	"fflagedit/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyPrintKeepsKeyOrder(t *testing.T) {
	got, ok := TryPrettyPrint(`{"b":2,"a":1}`)
	require.True(t, ok)
	assert.Equal(t, "{\n  \"b\": 2,\n  \"a\": 1\n}", got)
}

func TestPrettyPrintScenario(t *testing.T) {
	got, ok := TryPrettyPrint(`{"a":1,"b":2}`)
	require.True(t, ok)
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": 2\n}", got)
}

func TestPrettyPrintCustomIndent(t *testing.T) {
	got, ok := New("\t").TryPrettyPrint(`{"DFFlagX":"True","list":[1,2]}`)
	require.True(t, ok)
	assert.Equal(t, "{\n\t\"DFFlagX\": \"True\",\n\t\"list\": [\n\t\t1,\n\t\t2\n\t]\n}", got)
}

func TestPrettyPrintSurroundingWhitespace(t *testing.T) {
	got, ok := TryPrettyPrint("\n  {\"a\": true}  \n\n")
	require.True(t, ok)
	assert.Equal(t, "{\n  \"a\": true\n}", got)
}

func TestPrettyPrintPreservesNumberSpelling(t *testing.T) {
	got, ok := TryPrettyPrint(`{"big":12345678901234567890,"f":1.50}`)
	require.True(t, ok)
	assert.Contains(t, got, "12345678901234567890")
	assert.Contains(t, got, "1.50")
}

func TestPrettyPrintScalarsAndEmpty(t *testing.T) {
	for in, want := range map[string]string{
		`{}`:     `{}`,
		`[]`:     `[]`,
		`"text"`: `"text"`,
		` 42 `:   `42`,
		`null`:   `null`,
	} {
		got, ok := TryPrettyPrint(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
}

func TestNonJSONPassesThrough(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"not json at all",
		`{"a":1,}`,
		`{"a":1} trailing`,
		"// comment\n{\"a\":1}",
		`{'single':1}`,
	}
	for _, in := range inputs {
		got, ok := TryPrettyPrint(in)
		assert.False(t, ok, in)
		assert.Equal(t, in, got, "non-JSON text must come back unchanged")
	}
}

func TestPrettyPrintReportsInvalidJSON(t *testing.T) {
	_, err := New("").PrettyPrint(`{"a":`)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidJSON(err))
}

func TestPrettyPrintRoundTripsStructure(t *testing.T) {
	inputs := []string{
		`{"FFlagDebugGraphicsPreferVulkan":"True","DFIntTaskSchedulerTargetFps":240}`,
		`{"nested":{"a":[1,{"b":null}],"c":"é\n"},"d":false}`,
		`[{"x":1},{"x":2},[]]`,
		`{"emoji":"🙂","esc":"<tag>&"}`,
	}
	for _, in := range inputs {
		pretty, ok := TryPrettyPrint(in)
		require.True(t, ok, in)

		var before, after interface{}
		require.NoError(t, json.Unmarshal([]byte(in), &before))
		require.NoError(t, json.Unmarshal([]byte(pretty), &after))
		assert.Equal(t, before, after)

		// Formatting is idempotent
		again, ok := TryPrettyPrint(pretty)
		require.True(t, ok)
		assert.Equal(t, pretty, again)
	}
}

func TestPrettyPrintStripsByteOrderMark(t *testing.T) {
	got, ok := TryPrettyPrint("\uFEFF{\"a\":1,\"b\":2}")
	require.True(t, ok)
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": 2\n}", got)

	raw := "\uFEFFFFlagSomething=true"
	got, ok = TryPrettyPrint(raw)
	assert.False(t, ok)
	assert.Equal(t, raw, got, "non-JSON text keeps its mark")
}
