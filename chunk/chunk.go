// Package chunk implements Ember's bytecode container: a flat instruction
// stream paired with a constant pool and a per-byte line map, plus the
// opcode table the compiler and VM both key off of.
package chunk

import (
	"fmt"
	"os"

	"ember/value"
)

// Opcode identifies a single VM instruction.
type Opcode byte

// The complete, closed opcode set. Values are part of the on-disk/in-memory
// bytecode representation and must not be reordered.
const (
	Return Opcode = iota
	Constant
	Negate
	Add
	Subtract
	Multiply
	Divide
	Null
	True
	False
	Not
	Equal
	Greater
	Less
)

// OpDefinition describes an opcode's disassembly name and the byte width of
// each of its operands, in order.
type OpDefinition struct {
	Name          string
	OperandWidths []int
}

var definitions = map[Opcode]OpDefinition{
	Return:   {Name: "OP_RETURN"},
	Constant: {Name: "OP_CONSTANT", OperandWidths: []int{1}},
	Negate:   {Name: "OP_NEGATE"},
	Add:      {Name: "OP_ADD"},
	Subtract: {Name: "OP_SUBTRACT"},
	Multiply: {Name: "OP_MULTIPLY"},
	Divide:   {Name: "OP_DIVIDE"},
	Null:     {Name: "OP_NULL"},
	True:     {Name: "OP_TRUE"},
	False:    {Name: "OP_FALSE"},
	Not:      {Name: "OP_NOT"},
	Equal:    {Name: "OP_EQUAL"},
	Greater:  {Name: "OP_GREATER"},
	Less:     {Name: "OP_LESS"},
}

// Define looks up an opcode's definition. It returns an error for any byte
// value outside the closed opcode set, which the VM reports as a runtime
// error rather than panicking.
func Define(op Opcode) (OpDefinition, error) {
	def, ok := definitions[op]
	if !ok {
		return OpDefinition{}, fmt.Errorf("unknown opcode %d", op)
	}
	return def, nil
}

// MaxConstants is the hard cap on a chunk's constant pool, imposed by the
// single-byte constant index operand.
const MaxConstants = 256

// Chunk is an append-only sequence of bytecode bytes, the line each byte
// originated from (for runtime error reporting), and the pool of constant
// values CONSTANT instructions index into.
type Chunk struct {
	bytes  []byte
	lines  []int
	values []value.Value
}

// New returns an empty Chunk ready to be written to.
func New() *Chunk {
	return &Chunk{}
}

// WriteByte appends a single raw byte, attributing it to line.
func (c *Chunk) WriteByte(b byte, line int) {
	c.bytes = append(c.bytes, b)
	c.lines = append(c.lines, line)
}

// WriteOp appends an opcode byte, attributing it to line.
func (c *Chunk) WriteOp(op Opcode, line int) {
	c.WriteByte(byte(op), line)
}

// AddConstant appends v to the constant pool and returns its index. It
// fails once the pool would exceed MaxConstants, since the index is
// encoded as a single byte.
func (c *Chunk) AddConstant(v value.Value) (int, error) {
	if len(c.values) >= MaxConstants {
		return 0, fmt.Errorf("too many constants in one chunk (max %d)", MaxConstants)
	}
	c.values = append(c.values, v)
	return len(c.values) - 1, nil
}

// Len reports the number of bytes written so far.
func (c *Chunk) Len() int {
	return len(c.bytes)
}

// ByteAt returns the raw byte at offset.
func (c *Chunk) ByteAt(offset int) byte {
	return c.bytes[offset]
}

// LineAt returns the source line the byte at offset was emitted for.
func (c *Chunk) LineAt(offset int) int {
	return c.lines[offset]
}

// Constant returns the pooled value at index.
func (c *Chunk) Constant(index int) value.Value {
	return c.values[index]
}

// DumpBytecode writes the chunk's raw instruction stream to filePath with
// ".nic" appended, hex-encoded so it can be inspected in a text editor. An
// empty filePath writes to "bytecode.nic".
func (c *Chunk) DumpBytecode(filePath string) error {
	if filePath == "" {
		filePath = "bytecode.nic"
	} else {
		filePath = filePath + ".nic"
	}
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("error creating bytecode dump file: %w", err)
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "%x", c.bytes)
	return err
}
