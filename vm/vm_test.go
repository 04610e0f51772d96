package vm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ember/value"
)

func run(source string) (stdout, stderr string, result Result) {
	var out, err bytes.Buffer
	v := New(&out, &err)
	result = v.Interpret(source)
	return out.String(), err.String(), result
}

func TestEndToEndScenarios(t *testing.T) {
	tests := []struct {
		name   string
		source string
		stdout string
		exit   int
	}{
		{"grouped arithmetic", "-((1.2 + 3.4) / 2)", "-2.3\n", 0},
		{"boolean logic chain", "!(5 - 4 > 3 * 2 == !null)", "true\n", 0},
		{"string concatenation", `"st" + "ring"`, "string\n", 0},
		{"comparison chain", "1 < 2 == true", "true\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, result := run(tt.source)
			assert.Equal(t, tt.stdout, stdout)
			assert.Equal(t, tt.exit, result.ExitCode())
			assert.Equal(t, Ok, result)
		})
	}
}

func TestRuntimeErrorOnTypeMismatch(t *testing.T) {
	stdout, stderr, result := run(`1 + "a"`)
	assert.Empty(t, stdout)
	assert.Equal(t, RuntimeErr, result)
	assert.Equal(t, 70, result.ExitCode())
	assert.True(t, strings.HasSuffix(stderr, "[line 1] in script.\n"))
}

func TestCompileErrorOnUnclosedGrouping(t *testing.T) {
	stdout, stderr, result := run("(1 + 2")
	assert.Empty(t, stdout)
	assert.Equal(t, CompileError, result)
	assert.Equal(t, 65, result.ExitCode())
	assert.Contains(t, stderr, "Expected ')' after expression.")
}

func TestStackIsEmptyAfterSuccessfulRun(t *testing.T) {
	var out, errOut bytes.Buffer
	v := New(&out, &errOut)
	result := v.Interpret("1 + 2")
	require.Equal(t, Ok, result)
	assert.Equal(t, 0, v.stack.top)
}

func TestVMIsReusableAcrossInterpretCalls(t *testing.T) {
	var out, errOut bytes.Buffer
	v := New(&out, &errOut)

	require.Equal(t, Ok, v.Interpret("1 + 1"))
	out.Reset()
	require.Equal(t, Ok, v.Interpret("2 + 2"))

	assert.Equal(t, "4\n", out.String())
}

func TestEqualityNeverRaisesRuntimeError(t *testing.T) {
	stdout, stderr, result := run(`1 == "1"`)
	assert.Equal(t, Ok, result)
	assert.Empty(t, stderr)
	assert.Equal(t, "false\n", stdout)
}

func TestDivisionByZeroIsNotARuntimeError(t *testing.T) {
	stdout, stderr, result := run("1 / 0")
	assert.Equal(t, Ok, result)
	assert.Empty(t, stderr)
	assert.Equal(t, "+Inf\n", stdout)
}

func TestPushPopPreservesValue(t *testing.T) {
	var s stack
	s.push(value.Number(7))
	got := s.pop()
	assert.Equal(t, float64(7), got.AsNumber())
	assert.Equal(t, 0, s.top)
}
