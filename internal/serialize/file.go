package serialize

import (
	"fmt"
	"os"

	"github.com/lassiter/cryptolang/internal/grammar"
	"github.com/lassiter/cryptolang/internal/lex"
	"github.com/lassiter/cryptolang/internal/parse"
)

// WriteArtifactFile builds an Artifact from g and t and writes its Encoded
// bytes to path, the .ctab file cmd/cryptogen produces per grammar.
func WriteArtifactFile(path string, g *grammar.Grammar, t *parse.Table) error {
	data := Encode(BuildArtifact(g, t))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%q: writing artifact to disk: %w", path, err)
	}
	return nil
}

// ReadArtifactFile reads and Decodes a .ctab file, then rebuilds its lexer
// and parser tables via Load.
func ReadArtifactFile(path string) (*lex.Table, *parse.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%q: reading artifact from disk: %w", path, err)
	}
	lt, pt, err := Load(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%q: %w", path, err)
	}
	return lt, pt, nil
}
