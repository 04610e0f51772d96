package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"ember/compiler"
	"ember/vm"
)

// runCmd compiles and executes a single source file, optionally printing a
// disassembly and/or writing a hex-encoded bytecode dump alongside the run.
type runCmd struct {
	trace       bool
	disassemble bool
	dump        bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "compile and execute an Ember source file" }
func (*runCmd) Usage() string {
	return "run [-trace] [-disassemble] [-dump] <file.ember>\n"
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.trace, "trace", false, "print a stack/instruction trace before every dispatched instruction")
	f.BoolVar(&c.trace, "tr", false, "shorthand for -trace")
	f.BoolVar(&c.disassemble, "disassemble", false, "print a disassembly of the compiled chunk before running")
	f.BoolVar(&c.disassemble, "di", false, "shorthand for -disassemble")
	f.BoolVar(&c.dump, "dump", false, "write the compiled chunk's raw bytecode, hex-encoded, to a .nic file")
	f.BoolVar(&c.dump, "du", false, "shorthand for -dump")
}

func (c *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		logrus.WithError(err).WithField("file", args[0]).Error("failed to read source file")
		return subcommands.ExitFailure
	}

	if c.disassemble || c.dump {
		ch, ok := compiler.Compile(string(source))
		if ok {
			if c.disassemble {
				var buf bytes.Buffer
				ch.Disassemble(&buf, args[0])
				fmt.Fprint(os.Stdout, buf.String())
			}
			if c.dump {
				if err := ch.DumpBytecode(args[0]); err != nil {
					logrus.WithError(err).WithField("file", args[0]).Error("failed to dump bytecode")
				}
			}
		}
	}

	interpreter := vm.New(os.Stdout, os.Stderr)
	if c.trace {
		interpreter.Trace = os.Stdout
	}

	result := interpreter.Interpret(string(source))
	return subcommands.ExitStatus(result.ExitCode())
}
