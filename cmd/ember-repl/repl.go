package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"ember/lexer"
	"ember/token"
	"ember/vm"
)

// replCmd starts an interactive Ember session with line editing and
// history, courtesy of readline. Input spanning multiple lines (an
// unclosed grouping) is buffered until it looks complete before being
// handed to the interpreter.
type replCmd struct {
	trace bool
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "start an interactive Ember session" }
func (*replCmd) Usage() string {
	return "repl [-trace]\n"
}

func (c *replCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.trace, "trace", false, "print a stack/instruction trace before every dispatched instruction")
	f.BoolVar(&c.trace, "tr", false, "shorthand for -trace")
}

func (c *replCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     historyFilePath(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		logrus.WithError(err).Error("failed to start readline session")
		return subcommands.ExitFailure
	}
	defer rl.Close()

	fmt.Println("Welcome to Ember.")

	interpreter := vm.New(os.Stdout, os.Stderr)
	if c.trace {
		interpreter.Trace = os.Stdout
	}

	var buffer strings.Builder

	for {
		if buffer.Len() == 0 {
			rl.SetPrompt(">>> ")
		} else {
			rl.SetPrompt("... ")
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			buffer.Reset()
			continue
		}
		if err == io.EOF {
			return subcommands.ExitSuccess
		}
		if err != nil {
			logrus.WithError(err).Error("readline error")
			return subcommands.ExitFailure
		}

		if strings.TrimSpace(line) == "exit" && buffer.Len() == 0 {
			return subcommands.ExitSuccess
		}

		if buffer.Len() > 0 {
			buffer.WriteString("\n")
		}
		buffer.WriteString(line)

		if !inputLooksComplete(buffer.String()) {
			continue
		}

		interpreter.Interpret(buffer.String())
		buffer.Reset()
	}
}

func historyFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.ember_history"
}

// inputLooksComplete reports whether source has no unclosed parentheses
// (surplus closing ones are left for the compiler to report) and doesn't
// end on a token that obviously expects a right-hand side, so the
// REPL knows whether to keep reading lines or hand the buffer to the
// compiler.
func inputLooksComplete(source string) bool {
	l := lexer.New(source)

	parenDepth := 0
	var last token.Token
	for {
		tok := l.Next()
		if tok.Kind == token.Eof {
			break
		}
		if tok.Kind == token.LeftParen {
			parenDepth++
		}
		if tok.Kind == token.RightParen {
			parenDepth--
		}
		last = tok
	}

	if parenDepth > 0 {
		return false
	}

	switch last.Kind {
	case token.Plus, token.Minus, token.Star, token.Slash, token.Bang,
		token.Equal, token.EqualEqual, token.BangEqual,
		token.Less, token.LessEqual, token.Greater, token.GreaterEqual,
		token.LeftParen, token.And, token.Or:
		return false
	}

	return true
}
