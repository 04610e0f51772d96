package vm

import "fmt"

// RuntimeError is raised by an opcode handler when its operands don't
// support the operation. Its Error text is the exact diagnostic printed to
// stderr: the message, a newline, then the "[line L] in script." frame.
type RuntimeError struct {
	Message string
	Line    int
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d] in script.", e.Message, e.Line)
}
