package vm

import (
	"fmt"
	"sort"

	"bliks/lib"
	"bliks/trace"
	"bliks/types"
)

// Machine interprets a compiled program. It owns its registers, input
// buffer and program counter; the program and library are shared,
// immutable references, so any number of machines can run the same
// program independently.
type Machine struct {
	prog         *types.Program
	lib          *lib.Registry
	registers    map[int]types.Value
	buffer       []string
	next         int
	ret          int
	maxRegisters int
}

// NewMachine binds a machine to a compiled program. A nil registry
// selects the default library; maxRegisters 0 leaves the register count
// unlimited.
func NewMachine(p *types.Program, reg *lib.Registry, maxRegisters int) *Machine {
	if reg == nil {
		reg = lib.Default()
	}
	return &Machine{
		prog:         p,
		lib:          reg,
		registers:    make(map[int]types.Value),
		next:         p.Begin,
		maxRegisters: maxRegisters,
	}
}

// Program returns the machine's compiled program.
func (m *Machine) Program() *types.Program {
	return m.prog
}

// Push appends one input string to the buffer.
func (m *Machine) Push(s string) {
	m.buffer = append(m.buffer, s)
}

// Register reads a register directly, reporting whether it was ever
// written.
func (m *Machine) Register(i int) (types.Value, bool) {
	v, ok := m.registers[i]
	return v, ok
}

// SetRegister writes a register directly, respecting the configured
// register limit. Hosts use it to seed state before stepping.
func (m *Machine) SetRegister(i int, v types.Value) error {
	if i < 1 {
		return fmt.Errorf("register index %d is out of range", i)
	}
	if m.maxRegisters > 0 && i > m.maxRegisters {
		return fmt.Errorf("register %d exceeds the register limit of %d", i, m.maxRegisters)
	}
	m.registers[i] = v
	return nil
}

func (m *Machine) pop() (string, bool) {
	if len(m.buffer) == 0 {
		return "", false
	}
	s := m.buffer[0]
	m.buffer = m.buffer[1:]
	return s, true
}

// Step executes one instruction.
//
// The returned running flag is false on normal termination and on
// error; output is nil unless the step produced one. An output equal to
// the input sentinel (see NeedsInput) means the machine is waiting for
// the host to Push input and step again.
func (m *Machine) Step() (bool, types.Value, error) {
	if m.next < 1 || m.next > len(m.prog.Instructions) {
		return false, nil, nil
	}
	inst := &m.prog.Instructions[m.next-1]
	cur := m.next
	m.next = cur + 1

	vals, err := Expand(inst.Args, m.registers)
	if err != nil {
		return false, nil, m.fail(err, inst.Pos)
	}
	desc, ok := m.lib.Lookup(inst.Func)
	if !ok || desc.Run == nil {
		return false, nil, m.fail(fmt.Errorf("no runnable function '%s'", inst.Func), inst.Pos)
	}
	trace.Instr(inst.Num, inst.Func, vals)

	ctx := &lib.Context{
		Program:   m.prog,
		Cur:       cur,
		Next:      m.next,
		Return:    m.ret,
		Registers: make(map[int]types.Value),
		PopFunc:   m.pop,
	}
	if err := desc.Run(ctx, vals); err != nil {
		return false, nil, m.fail(err, inst.Pos)
	}

	// Flush the accumulated register writes in index order.
	idxs := make([]int, 0, len(ctx.Registers))
	for i := range ctx.Registers {
		idxs = append(idxs, i)
	}
	sort.Ints(idxs)
	for _, i := range idxs {
		if m.maxRegisters > 0 && i > m.maxRegisters {
			return false, nil, m.fail(fmt.Errorf("register %d exceeds the register limit of %d", i, m.maxRegisters), inst.Pos)
		}
		m.registers[i] = ctx.Registers[i]
	}

	m.next = ctx.Next
	m.ret = ctx.Return
	out, has := ctx.Output()
	if !has {
		return true, nil, nil
	}
	return true, out, nil
}

// StepUntilOutput steps until the machine stops, fails, or produces an
// output.
func (m *Machine) StepUntilOutput() (bool, types.Value, error) {
	for {
		running, out, err := m.Step()
		if !running || err != nil || out != nil {
			return running, out, err
		}
	}
}

// fail marks the machine non-running and attaches the instruction
// position to the error.
func (m *Machine) fail(err error, pos int) error {
	m.next = -1
	if be, ok := err.(*types.Error); ok {
		return be
	}
	return &types.Error{Message: err.Error(), Pos: pos}
}

// NeedsInput reports whether a step output is the sentinel a poll emits
// when the input buffer is empty.
func NeedsInput(v types.Value) bool {
	f, ok := v.(float64)
	return ok && f == lib.InputSentinel
}
