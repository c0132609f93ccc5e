/*
Cryptogen is the ahead-of-time generator for the simulation language's
lexer and parser tables (spec.md §6's "Generated artifacts").

It builds the canonical LR(1) table for the grammar internal/dsl defines,
and writes it to a .ctab file via internal/serialize. internal/dsl.Preload
can then load that file at run time instead of calling parse.Generate
itself, which is how the interpreter's reader stays independent of the
generator.

Usage:

	cryptogen [flags]

The flags are:

	-o, --output FILE
		Path to write the generated artifact to. Defaults to "sim.ctab" in
		the current working directory.

	--dump-table
		Print the generated ACTION/GOTO table as a formatted grid to
		stdout instead of (or in addition to, if -o is also given) writing
		an artifact file.
*/
package main

import (
	"fmt"
	"os"

	"github.com/lassiter/cryptolang/internal/dsl"
	"github.com/lassiter/cryptolang/internal/parse"
	"github.com/lassiter/cryptolang/internal/serialize"
	"github.com/spf13/pflag"
)

const (
	ExitSuccess = iota
	ExitGenerateError
	ExitWriteError
)

var (
	returnCode int     = ExitSuccess
	outputFile *string = pflag.StringP("output", "o", "sim.ctab", "Path to write the generated lexer/parser artifact to")
	dumpTable  *bool   = pflag.Bool("dump-table", false, "Print the generated ACTION/GOTO table to stdout")
)

func main() {
	defer func() { os.Exit(returnCode) }()

	pflag.Parse()

	g := dsl.Grammar()
	table, err := parse.Generate(g)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: generating parse table: %s\n", err.Error())
		returnCode = ExitGenerateError
		return
	}

	if *dumpTable {
		fmt.Println(table.String())
		if !pflag.CommandLine.Changed("output") {
			return
		}
	}

	if err := serialize.WriteArtifactFile(*outputFile, g, table); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: writing artifact: %s\n", err.Error())
		returnCode = ExitWriteError
		return
	}

	fmt.Printf("wrote %s\n", *outputFile)
}
