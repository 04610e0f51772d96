// Command ember is Ember's minimal entry point: it reads a source file,
// interprets it, and exits with the status the interpretation produced.
// It carries no flags and no dependencies beyond the interpreter itself,
// since its stdout/stderr/exit-code contract must stay byte-exact.
package main

import (
	"fmt"
	"os"

	"ember/vm"
)

func main() {
	args := os.Args[1:]
	if len(args) != 1 {
		fmt.Println("Usage: ember <file.ember>")
		os.Exit(1)
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not read file %q: %v\n", args[0], err)
		os.Exit(74)
	}

	interpreter := vm.New(os.Stdout, os.Stderr)
	result := interpreter.Interpret(string(source))
	os.Exit(result.ExitCode())
}
