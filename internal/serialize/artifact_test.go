package serialize

import (
	"path/filepath"
	"testing"

	"github.com/lassiter/cryptolang/internal/grammar"
	"github.com/lassiter/cryptolang/internal/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallGrammar builds S -> A A, A -> 'a' so the round-trip tests exercise at
// least one shift, one reduce, and one accept action.
func smallGrammar() *grammar.Grammar {
	g := grammar.New("S")
	g.AddTerminal("a", "a", false)
	g.AddProduction("S", []string{"A", "A"}, grammar.Construct("pair", 0, 1))
	g.AddProduction("A", []string{"a"}, grammar.Project(0))
	return g
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	g := smallGrammar()
	pt, err := parse.Generate(g)
	require.NoError(t, err)

	original := BuildArtifact(g, pt)
	data := Encode(original)
	require.NotEmpty(t, data)

	decoded, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, original.Grammar.Start, decoded.Grammar.Start)
	assert.Equal(t, original.Grammar.Terminals, decoded.Grammar.Terminals)
	assert.Equal(t, original.Grammar.NonTerminals, decoded.Grammar.NonTerminals)
	assert.Equal(t, original.Grammar.Productions, decoded.Grammar.Productions)
	assert.Equal(t, original.Table, decoded.Table)
}

func TestDecode_RejectsTrailingBytes(t *testing.T) {
	g := smallGrammar()
	pt, err := parse.Generate(g)
	require.NoError(t, err)

	data := Encode(BuildArtifact(g, pt))
	data = append(data, 0xFF, 0xFF)

	_, err = Decode(data)
	assert.Error(t, err)
}

func TestWriteReadArtifactFile_RoundTrip(t *testing.T) {
	g := smallGrammar()
	pt, err := parse.Generate(g)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "small.ctab")
	require.NoError(t, WriteArtifactFile(path, g, pt))

	lt, restored, err := ReadArtifactFile(path)
	require.NoError(t, err)
	require.NotNil(t, lt)

	tokens, err := lt.Tokenize("aa")
	require.NoError(t, err)
	require.NotEmpty(t, tokens)

	assert.Equal(t, pt.Start(), restored.Start())
	assert.Equal(t, pt.Action(pt.Start(), "a"), restored.Action(restored.Start(), "a"))
}

func TestLoad_RebuildsEquivalentLRTable(t *testing.T) {
	g := smallGrammar()
	pt, err := parse.Generate(g)
	require.NoError(t, err)

	data := Encode(BuildArtifact(g, pt))
	_, restored, err := Load(data)
	require.NoError(t, err)

	for _, term := range []string{"a", grammar.EndOfInput} {
		assert.Equal(t, pt.Action(pt.Start(), term), restored.Action(restored.Start(), term))
	}
}
