package bliks

import (
	"strings"
	"testing"

	"bliks/types"
	"bliks/vm"
)

// The scenarios below follow the machine through the host-facing
// surface only: Compile, NewMachine, MachineFromSource and the machine's
// Push, Step, StepUntilOutput and Register.

func TestEmptyProgram(t *testing.T) {
	prog, err := Compile("", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(prog.Instructions) != 0 || prog.Begin != 1 {
		t.Fatalf("program = %d instructions, begin %d", len(prog.Instructions), prog.Begin)
	}
	m := NewMachine(prog, nil, 0)
	running, out, err := m.Step()
	if running || out != nil || err != nil {
		t.Errorf("Step() = (%v, %v, %v), want (false, nil, nil)", running, out, err)
	}
}

func TestMacroAndRetrievalProgram(t *testing.T) {
	prog, err := Compile("let a 3; > nice; set a 5; begin; max a a @a < @@@6 2", nil)
	if err != nil {
		t.Fatal(err)
	}
	if prog.Begin != 2 {
		t.Errorf("begin = %d, want 2", prog.Begin)
	}

	// Drive a machine over the first three lines of that source, from
	// the top, so the set executes: register 3 must then hold "5".
	m, err := MachineFromSource("let a 3; > nice; set a 5", nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := m.Step(); err != nil {
		t.Fatal(err)
	}
	if v, ok := m.Register(3); !ok || types.ToString(v) != "5" {
		t.Errorf("register 3 = %v (%v), want \"5\"", v, ok)
	}
}

func TestBackRetrievalDepths(t *testing.T) {
	prog, err := Compile("add @@1 < <", nil)
	if err != nil {
		t.Fatal(err)
	}
	args := prog.Instructions[0].Args
	for i, want := range []int{2, 3, 3} {
		if args[i].Depth != want || args[i].Value != "1" {
			t.Errorf("argument %d = depth %d payload %q, want depth %d payload \"1\"",
				i+1, args[i].Depth, args[i].Value, want)
		}
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		source  string
		message string
	}{
		{"> hi; tonum 1 hi", "macro 'hi' is not defined"},
		{"add 3.2 3 3", "function expects a pointer for argument 1, but got '3.2' (a number)"},
		{"add < 2 3", "the first argument cannot be a back retrieval"},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			_, err := Compile(tt.source, nil)
			if err == nil {
				t.Fatal("compile succeeded")
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("error = %q, want substring %q", err, tt.message)
			}
		})
	}
}

func TestInputSuspension(t *testing.T) {
	m, err := MachineFromSource("poll 1\nwrite @1", nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	running, out, err := m.Step()
	if err != nil || !running || !vm.NeedsInput(out) {
		t.Fatalf("first step = (%v, %v, %v), want an input request", running, out, err)
	}
	m.Push("x")
	if _, _, err := m.Step(); err != nil {
		t.Fatal(err)
	}
	if v, _ := m.Register(1); v != "x" {
		t.Errorf("register 1 = %v, want \"x\"", v)
	}
	running, out, err = m.StepUntilOutput()
	if err != nil || !running || types.ToString(out) != "x" {
		t.Errorf("output = (%v, %v, %v), want \"x\"", running, out, err)
	}
}

func TestRegisterLimit(t *testing.T) {
	m, err := MachineFromSource("set 3 1", nil, 2)
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = m.Step()
	if err == nil || !strings.Contains(err.Error(), "register 3 exceeds the register limit of 2") {
		t.Errorf("error = %v", err)
	}
}

// A program contains only plain data, so sharing it between machines is
// safe; two machines must not observe each other's registers.
func TestMachinesAreIndependent(t *testing.T) {
	prog, err := Compile("readnum 1\nadd 1 @1 1\nwrite @1", nil)
	if err != nil {
		t.Fatal(err)
	}
	a := NewMachine(prog, nil, 0)
	b := NewMachine(prog, nil, 0)
	a.Push("10")
	b.Push("20")
	_, outA, err := a.StepUntilOutput()
	if err != nil {
		t.Fatal(err)
	}
	_, outB, err := b.StepUntilOutput()
	if err != nil {
		t.Fatal(err)
	}
	if types.ToString(outA) != "11" || types.ToString(outB) != "21" {
		t.Errorf("outputs = %v, %v; want 11, 21", outA, outB)
	}
}
