package conformance

import (
	"strings"
	"testing"

	"bliks"
	"bliks/types"
	"bliks/vm"
)

// maxSteps bounds each case so a broken jump cannot hang the suite.
const maxSteps = 100000

func TestSuites(t *testing.T) {
	suites, err := LoadAll("testdata")
	if err != nil {
		t.Fatalf("loading suites: %v", err)
	}
	if len(suites) == 0 {
		t.Fatal("no conformance suites found")
	}
	for _, ls := range suites {
		t.Run(ls.Suite.Name, func(t *testing.T) {
			for _, tc := range ls.Suite.Tests {
				t.Run(tc.Name, func(t *testing.T) {
					runCase(t, tc)
				})
			}
		})
	}
}

func runCase(t *testing.T, tc Case) {
	prog, err := bliks.Compile(tc.Source, nil)
	if tc.Expect.CompileError != "" {
		if err == nil {
			t.Fatalf("expected compile error containing %q, got none", tc.Expect.CompileError)
		}
		if !strings.Contains(err.Error(), tc.Expect.CompileError) {
			t.Fatalf("compile error = %q, want substring %q", err, tc.Expect.CompileError)
		}
		return
	}
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	m := bliks.NewMachine(prog, nil, tc.MaxRegisters)
	for _, in := range tc.Inputs {
		m.Push(in)
	}

	var outputs []string
	var runErr error
	for steps := 0; ; steps++ {
		if steps > maxSteps {
			t.Fatal("case did not terminate")
		}
		running, out, err := m.Step()
		if err != nil {
			runErr = err
			break
		}
		if !running {
			break
		}
		if out == nil {
			continue
		}
		if vm.NeedsInput(out) {
			t.Fatal("machine requested input beyond the declared inputs")
		}
		outputs = append(outputs, types.ToString(out))
	}

	if tc.Expect.RunError != "" {
		if runErr == nil {
			t.Fatalf("expected runtime error containing %q, got none", tc.Expect.RunError)
		}
		if !strings.Contains(runErr.Error(), tc.Expect.RunError) {
			t.Fatalf("runtime error = %q, want substring %q", runErr, tc.Expect.RunError)
		}
	} else if runErr != nil {
		t.Fatalf("runtime error: %v", runErr)
	}

	if len(outputs) != len(tc.Expect.Outputs) {
		t.Fatalf("outputs = %q, want %q", outputs, tc.Expect.Outputs)
	}
	for i, want := range tc.Expect.Outputs {
		if outputs[i] != want {
			t.Errorf("output %d = %q, want %q", i, outputs[i], want)
		}
	}

	for idx, want := range tc.Expect.Registers {
		v, ok := m.Register(idx)
		if !ok {
			t.Errorf("register %d never written, want %q", idx, want)
			continue
		}
		if got := types.ToString(v); got != want {
			t.Errorf("register %d = %q, want %q", idx, got, want)
		}
	}
}
