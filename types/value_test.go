package types

import "testing"

func TestTypeOf(t *testing.T) {
	tests := []struct {
		value Value
		want  ValueType
	}{
		{"1", Pointer},
		{"42", Pointer},
		{"3.0", Pointer},
		{"0", Number},
		{"-1", Number},
		{"3.2", Number},
		{"-0.5", Number},
		{"1e3", Pointer},
		{"inf", Number},
		{"-inf", Number},
		{"", String},
		{"abc", String},
		{"12abc", String},
		{float64(7), Pointer},
		{float64(0), Number},
		{float64(-3), Number},
		{float64(2.5), Number},
	}
	for _, tt := range tests {
		t.Run(ToString(tt.value), func(t *testing.T) {
			if got := TypeOf(tt.value); got != tt.want {
				t.Errorf("TypeOf(%v) = %s, want %s", tt.value, got, tt.want)
			}
		})
	}
}

func TestIsChain(t *testing.T) {
	tests := []struct {
		sub, super ValueType
		want       bool
	}{
		{Pointer, Pointer, true},
		{Pointer, Number, true},
		{Pointer, String, true},
		{Number, Number, true},
		{Number, String, true},
		{Number, Pointer, false},
		{String, String, true},
		{String, Number, false},
		{String, Pointer, false},
		{Name, Name, true},
		{Name, String, false},
		{String, Name, false},
	}
	for _, tt := range tests {
		if got := Is(tt.sub, tt.super); got != tt.want {
			t.Errorf("Is(%s, %s) = %v, want %v", tt.sub, tt.super, got, tt.want)
		}
	}
}

// Every value satisfies its own type, and pointers satisfy the whole
// chain.
func TestIsReflexiveOverTypeOf(t *testing.T) {
	for _, v := range []Value{"1", "0", "abc", "", float64(3), float64(-1.5)} {
		tv := TypeOf(v)
		if !Is(tv, tv) {
			t.Errorf("Is(%s, %s) = false for %v", tv, tv, v)
		}
		if tv == Pointer && (!Is(tv, Number) || !Is(tv, String)) {
			t.Errorf("pointer %v does not satisfy the chain", v)
		}
	}
}

func TestToString(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{"abc", "abc"},
		{float64(5), "5"},
		{float64(0.5), "0.5"},
		{float64(-2), "-2"},
		{float64(10), "10"},
	}
	for _, tt := range tests {
		if got := ToString(tt.value); got != tt.want {
			t.Errorf("ToString(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestTypeOfToken(t *testing.T) {
	if got := TypeOfToken(&Token{Type: TokenName, Value: "x"}); got != Name {
		t.Errorf("name token typed as %s", got)
	}
	if got := TypeOfToken(&Token{Type: TokenLiteral, Value: "3"}); got != Pointer {
		t.Errorf("literal 3 typed as %s", got)
	}
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a retrieval token")
		}
	}()
	TypeOfToken(&Token{Type: TokenRetrieval})
}
