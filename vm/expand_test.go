package vm

import (
	"strings"
	"testing"

	"bliks/types"
)

func TestExpandValues(t *testing.T) {
	args := []types.Argument{
		{Kind: types.ArgValue, Expected: types.String, Value: "hello"},
		{Kind: types.ArgValue, Expected: types.Number, Value: "3.5"},
		{Kind: types.ArgValue, Expected: types.Pointer, Value: "2"},
	}
	vals, err := Expand(args, nil)
	if err != nil {
		t.Fatal(err)
	}
	if vals[0] != "hello" {
		t.Errorf("string argument = %v", vals[0])
	}
	if vals[1] != 3.5 {
		t.Errorf("number argument = %v, want 3.5", vals[1])
	}
	if vals[2] != 2.0 {
		t.Errorf("pointer argument = %v, want 2", vals[2])
	}
}

func TestExpandRetrievalHops(t *testing.T) {
	regs := map[int]types.Value{1: float64(2), 2: "b"}
	arg := []types.Argument{{Kind: types.ArgRetrieval, Expected: types.String, Value: "1", Depth: 2}}
	vals, err := Expand(arg, regs)
	if err != nil {
		t.Fatal(err)
	}
	if vals[0] != "b" {
		t.Errorf("expanded to %v, want \"b\"", vals[0])
	}
}

func TestExpandRetrievalPointerMismatch(t *testing.T) {
	regs := map[int]types.Value{1: float64(2), 2: "b"}
	arg := []types.Argument{{Kind: types.ArgRetrieval, Expected: types.Pointer, Value: "1", Depth: 2}}
	_, err := Expand(arg, regs)
	if err == nil {
		t.Fatal("expected an error")
	}
	want := "expected pointer during retrieval, but got '1' -> '2' -> 'b' (a string)"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err, want)
	}
}

func TestExpandMidChainNonPointer(t *testing.T) {
	regs := map[int]types.Value{5: "word"}
	arg := []types.Argument{{Kind: types.ArgRetrieval, Expected: types.String, Value: "5", Depth: 2}}
	_, err := Expand(arg, regs)
	if err == nil {
		t.Fatal("expected an error")
	}
	want := "expected pointer during retrieval, but got '5' -> 'word' (a string)"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err, want)
	}
}

func TestExpandFinalTypeMismatch(t *testing.T) {
	regs := map[int]types.Value{1: "word"}
	arg := []types.Argument{{Kind: types.ArgRetrieval, Expected: types.Number, Value: "1", Depth: 1}}
	_, err := Expand(arg, regs)
	if err == nil {
		t.Fatal("expected an error")
	}
	want := "function expects a number for argument 1, but retrieval expanded to '1' -> 'word' (a string)"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err, want)
	}
}

// Missing registers read as the empty string.
func TestExpandMissingRegister(t *testing.T) {
	arg := []types.Argument{{Kind: types.ArgRetrieval, Expected: types.String, Value: "9", Depth: 1}}
	vals, err := Expand(arg, map[int]types.Value{})
	if err != nil {
		t.Fatal(err)
	}
	if vals[0] != "" {
		t.Errorf("expanded to %v, want \"\"", vals[0])
	}
}

func TestExpandTraceTruncation(t *testing.T) {
	long := strings.Repeat("x", 100)
	regs := map[int]types.Value{1: long}
	arg := []types.Argument{{Kind: types.ArgRetrieval, Expected: types.String, Value: "1", Depth: 2}}
	_, err := Expand(arg, regs)
	if err == nil {
		t.Fatal("expected an error")
	}
	if strings.Contains(err.Error(), long) {
		t.Error("trace was not truncated")
	}
	if !strings.Contains(err.Error(), "...") {
		t.Error("trace is missing the ellipsis")
	}
}
