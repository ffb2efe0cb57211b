// Package bliks is a small embeddable scripting language: a parser that
// turns source text into instruction token lines, a resolver that
// compiles them against a library of built-ins, and a cooperative
// register machine that interprets the result with buffered input.
//
// A compiled program is deeply immutable and may back any number of
// machines; each machine owns its registers, input buffer and program
// counter and runs only when the host calls Step.
package bliks

import (
	"bliks/lib"
	"bliks/parser"
	"bliks/types"
	"bliks/vm"
)

// Compile parses and resolves source into an immutable program. A nil
// registry selects the default standard library. Errors carry the byte
// position of the offending source; render them with FormatError.
func Compile(source string, reg *lib.Registry) (*types.Program, error) {
	lines, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	return vm.Resolve(lines, reg)
}

// NewMachine binds a fresh machine to a compiled program. maxRegisters 0
// leaves the register count unlimited.
func NewMachine(p *types.Program, reg *lib.Registry, maxRegisters int) *vm.Machine {
	return vm.NewMachine(p, reg, maxRegisters)
}

// MachineFromSource compiles source and returns a machine ready to step.
func MachineFromSource(source string, reg *lib.Registry, maxRegisters int) (*vm.Machine, error) {
	p, err := Compile(source, reg)
	if err != nil {
		return nil, err
	}
	return vm.NewMachine(p, reg, maxRegisters), nil
}
