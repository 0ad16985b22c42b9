package cluster

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lowerKey groups case-insensitively, enough to exercise the reduction
// without the full cleanup pipeline.
var lowerKey = KeyFunc(func(s string) (string, error) {
	return strings.ToLower(strings.TrimSpace(s)), nil
})

var errBadInput = errors.New("bad input")

func TestCanonicalizeMajority(t *testing.T) {
	engine := NewEngine(lowerKey, Options{})
	got, err := engine.Canonicalize([]string{"NYC", "nyc", "NYC"})
	require.NoError(t, err)
	assert.Equal(t, []string{"NYC", "NYC", "NYC"}, got)
}

func TestCanonicalizePreservesOrderAndLength(t *testing.T) {
	engine := NewEngine(lowerKey, Options{})
	input := []string{"Boston", "new york", "boston", "New York", "New York", "Denver"}
	got, err := engine.Canonicalize(input)
	require.NoError(t, err)
	assert.Equal(t, []string{"Boston", "New York", "Boston", "New York", "New York", "Denver"}, got)
}

func TestCanonicalizeTieBreakFirstOccurrence(t *testing.T) {
	engine := NewEngine(lowerKey, Options{})
	got, err := engine.Canonicalize([]string{"paris", "PARIS", "Paris", "PARIS", "paris"})
	require.NoError(t, err)
	assert.Equal(t, []string{"paris", "paris", "paris", "paris", "paris"}, got)
}

func TestCanonicalizeIdempotent(t *testing.T) {
	engine := NewEngine(lowerKey, Options{})
	input := []string{"a", "A", "b", "B", "B", "c"}
	once, err := engine.Canonicalize(input)
	require.NoError(t, err)
	twice, err := engine.Canonicalize(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestCanonicalizeEmpty(t *testing.T) {
	engine := NewEngine(lowerKey, Options{Workers: 4})
	got, err := engine.Canonicalize(nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCanonicalizeParallelMatchesSerial(t *testing.T) {
	input := make([]string, 0, 500)
	for i := range 500 {
		word := fmt.Sprintf("word%d", i%37)
		if i%3 == 0 {
			word = strings.ToUpper(word)
		}
		input = append(input, word)
	}
	serial, err := NewEngine(lowerKey, Options{Workers: 1}).Canonicalize(input)
	require.NoError(t, err)
	for _, workers := range []int{2, 4, 16, 1000} {
		parallel, err := NewEngine(lowerKey, Options{Workers: workers}).Canonicalize(input)
		require.NoError(t, err)
		assert.Equal(t, serial, parallel, "workers=%d", workers)
	}
}

func TestKeysErrorCarriesIndex(t *testing.T) {
	keyer := KeyFunc(func(s string) (string, error) {
		if s == "bad" {
			return "", errBadInput
		}
		return s, nil
	})
	for _, workers := range []int{1, 3} {
		engine := NewEngine(keyer, Options{Workers: workers})
		_, err := engine.Canonicalize([]string{"ok", "ok", "bad", "ok", "bad"})
		require.Error(t, err)
		require.ErrorIs(t, err, errBadInput)

		var keyErr *KeyError
		require.ErrorAs(t, err, &keyErr)
		assert.Equal(t, 2, keyErr.Index, "workers=%d", workers)
		assert.Contains(t, err.Error(), "element 2")
	}
}

func TestGroupReportsMembers(t *testing.T) {
	engine := NewEngine(lowerKey, Options{})
	result, err := engine.Group([]string{"nyc", "NYC", "Boston", "NYC", "boston"})
	require.NoError(t, err)

	assert.Equal(t, []string{"nyc", "nyc", "boston", "nyc", "boston"}, result.Keys)
	require.Len(t, result.Groups, 2)

	nyc := result.Groups[0]
	assert.Equal(t, "nyc", nyc.Key)
	assert.Equal(t, "NYC", nyc.Canonical)
	assert.Equal(t, 3, nyc.Size)
	assert.Equal(t, []Member{
		{Value: "nyc", Count: 1, FirstIndex: 0},
		{Value: "NYC", Count: 2, FirstIndex: 1},
	}, nyc.Members)
	assert.Equal(t, 1, nyc.Replaced())

	boston := result.Groups[1]
	assert.Equal(t, "Boston", boston.Canonical)
	assert.Equal(t, 2, boston.Size)

	assert.Equal(t, 2, result.Replaced())
	assert.Equal(t, []string{"NYC", "NYC", "Boston", "NYC", "Boston"}, result.Canonical())
}

func TestMostCommon(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{"majority", []string{"b", "a", "b"}, "b"},
		{"tie first wins", []string{"x", "y", "y", "x"}, "x"},
		{"single", []string{"only"}, "only"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MostCommon(tt.values))
		})
	}
}
