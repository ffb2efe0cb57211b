package lib

import (
	"fmt"
	"math"

	"bliks/types"
)

// maxRegisterIndex bounds register indices independently of any
// configured machine limit, so a pointer produced by arithmetic cannot
// overflow the index space.
const maxRegisterIndex = math.MaxInt32

// Context is the transient view a run behavior has onto its machine
// during a single step. Register writes accumulate in Registers and are
// flushed by the machine after the behavior returns; Next and Return are
// copied back the same way. Output can be set at most once per step.
type Context struct {
	Program *types.Program
	Cur     int // index of the executing instruction
	Next    int // program counter after this step; behaviors may redirect it
	Return  int // pending call return target, 0 when none

	Registers map[int]types.Value
	PopFunc   func() (string, bool)

	output    types.Value
	hasOutput bool
}

// PopBuffer removes and returns the oldest buffered input string.
func (c *Context) PopBuffer() (string, bool) {
	if c.PopFunc == nil {
		return "", false
	}
	return c.PopFunc()
}

// SetOutput records the step's output value. Only the first call in a
// step takes effect; later calls are ignored.
func (c *Context) SetOutput(v types.Value) {
	if c.hasOutput {
		return
	}
	c.output = v
	c.hasOutput = true
}

// Output returns the value recorded by SetOutput, if any.
func (c *Context) Output() (types.Value, bool) {
	return c.output, c.hasOutput
}

// Store writes v to the register addressed by ptr. The expander has
// already verified ptr is a pointer; this guards the index space.
func (c *Context) Store(ptr float64, v types.Value) error {
	if ptr > maxRegisterIndex {
		return fmt.Errorf("register index %s is out of range", types.ToString(ptr))
	}
	idx := int(ptr)
	if idx <= 0 || float64(idx) != ptr {
		return fmt.Errorf("'%s' is not a usable register index", types.ToString(ptr))
	}
	c.Registers[idx] = v
	return nil
}

// truthy follows the language's truth rule: the empty string is false,
// everything else is true.
func truthy(v types.Value) bool {
	return types.ToString(v) != ""
}

func boolValue(b bool) types.Value {
	if b {
		return "true"
	}
	return ""
}
