package regex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Pattern_Match(t *testing.T) {
	testCases := []struct {
		name      string
		pattern   string
		input     string
		pos       int
		wantOK    bool
		wantMatch string
	}{
		{name: "literal concat", pattern: "abc", input: "abcdef", pos: 0, wantOK: true, wantMatch: "abc"},
		{name: "alternation picks first branch", pattern: "cat|dog", input: "cat", pos: 0, wantOK: true, wantMatch: "cat"},
		{name: "alternation picks second branch", pattern: "cat|dog", input: "dog", pos: 0, wantOK: true, wantMatch: "dog"},
		{name: "kleene star is greedy", pattern: "a*", input: "aaab", pos: 0, wantOK: true, wantMatch: "aaa"},
		{name: "kleene star matches zero", pattern: "a*", input: "b", pos: 0, wantOK: true, wantMatch: ""},
		{name: "kleene plus requires one", pattern: "a+", input: "b", pos: 0, wantOK: false},
		{name: "maybe", pattern: "colou?r", input: "color", pos: 0, wantOK: true, wantMatch: "color"},
		{name: "digit shorthand", pattern: `\d+`, input: "42abc", pos: 0, wantOK: true, wantMatch: "42"},
		{name: "bracket range", pattern: "[a-z]+", input: "hello123", pos: 0, wantOK: true, wantMatch: "hello"},
		{name: "negated bracket", pattern: "[^0-9]+", input: "abc123", pos: 0, wantOK: true, wantMatch: "abc"},
		{name: "match from offset", pattern: "[a-z]+", input: "123hello", pos: 3, wantOK: true, wantMatch: "hello"},
		{name: "no match at position", pattern: "[a-z]+", input: "123", pos: 0, wantOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// setup
			assert := assert.New(t)
			require := require.New(t)
			pattern, err := Compile(tc.pattern)
			require.NoError(err)

			// execute
			m, ok := pattern.Match(tc.input, tc.pos)

			// assert
			assert.Equal(tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(tc.wantMatch, m.Lexeme)
			}
		})
	}
}

func Test_Pattern_NamedGroup(t *testing.T) {
	// setup
	assert := assert.New(t)
	require := require.New(t)
	pattern, err := Compile(`(?P<digits>\d+)`)
	require.NoError(err)

	// execute
	m, ok := pattern.Match("123", 0)

	// assert
	require.True(ok)
	assert.Equal("123", m.Lexeme)
	assert.Equal("123", m.Groups["digits"])
}
