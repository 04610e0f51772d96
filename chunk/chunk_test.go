package chunk

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ember/value"
)

func TestWriteByteTracksLines(t *testing.T) {
	c := New()
	c.WriteOp(Null, 1)
	c.WriteOp(Return, 2)

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if c.LineAt(0) != 1 || c.LineAt(1) != 2 {
		t.Errorf("lines = [%d, %d], want [1, 2]", c.LineAt(0), c.LineAt(1))
	}
	if Opcode(c.ByteAt(0)) != Null || Opcode(c.ByteAt(1)) != Return {
		t.Errorf("bytes = [%d, %d], want [Null, Return]", c.ByteAt(0), c.ByteAt(1))
	}
}

func TestAddConstantReturnsSequentialIndices(t *testing.T) {
	c := New()
	i0, err := c.AddConstant(value.Number(1))
	if err != nil || i0 != 0 {
		t.Fatalf("AddConstant(1) = (%d, %v), want (0, nil)", i0, err)
	}
	i1, err := c.AddConstant(value.Number(2))
	if err != nil || i1 != 1 {
		t.Fatalf("AddConstant(2) = (%d, %v), want (1, nil)", i1, err)
	}
	if c.Constant(0).AsNumber() != 1 || c.Constant(1).AsNumber() != 2 {
		t.Errorf("constant pool mismatch")
	}
}

func TestAddConstantRejectsOverflow(t *testing.T) {
	c := New()
	for i := 0; i < MaxConstants; i++ {
		if _, err := c.AddConstant(value.Number(float64(i))); err != nil {
			t.Fatalf("AddConstant(%d) unexpectedly failed: %v", i, err)
		}
	}
	if _, err := c.AddConstant(value.Number(999)); err == nil {
		t.Error("AddConstant past MaxConstants should error")
	}
}

func TestDefineUnknownOpcode(t *testing.T) {
	if _, err := Define(Opcode(255)); err == nil {
		t.Error("Define(255) should error for an undefined opcode")
	}
}

func TestDisassembleSimpleOp(t *testing.T) {
	c := New()
	c.WriteOp(Return, 1)

	var buf bytes.Buffer
	c.Disassemble(&buf, "test")

	want := "== test ==\n0000    1 OP_RETURN\n"
	if buf.String() != want {
		t.Errorf("Disassemble() = %q, want %q", buf.String(), want)
	}
}

func TestDisassembleConstantOp(t *testing.T) {
	c := New()
	idx, _ := c.AddConstant(value.Number(1))
	c.WriteOp(Constant, 1)
	c.WriteByte(byte(idx), 1)
	c.WriteOp(Return, 1)

	var buf bytes.Buffer
	c.Disassemble(&buf, "test")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "OP_CONSTANT") || !strings.Contains(lines[1], "'1'") {
		t.Errorf("constant line = %q, missing OP_CONSTANT or value", lines[1])
	}
	// The RETURN instruction shares line 1 with CONSTANT, so its line
	// column collapses to the "same line as previous" marker.
	if !strings.Contains(lines[2], "   | ") {
		t.Errorf("return line = %q, want repeated-line marker", lines[2])
	}
}

func TestDumpBytecodeWritesHexEncodedInstructions(t *testing.T) {
	c := New()
	c.WriteOp(Null, 1)
	c.WriteOp(Return, 1)

	path := filepath.Join(t.TempDir(), "out")
	if err := c.DumpBytecode(path); err != nil {
		t.Fatalf("DumpBytecode() error = %v", err)
	}

	got, err := os.ReadFile(path + ".nic")
	if err != nil {
		t.Fatalf("reading dump file: %v", err)
	}
	want := "0700"
	if string(got) != want {
		t.Errorf("dump contents = %q, want %q", got, want)
	}
}
