package types

import "sort"

// ArgumentKind distinguishes literal arguments from retrievals.
type ArgumentKind int

const (
	ArgValue ArgumentKind = iota
	ArgRetrieval
)

// Argument is one resolved instruction argument. For ArgValue, Value is
// the literal payload. For ArgRetrieval, Value is the starting register
// index and Depth the number of lookup hops.
type Argument struct {
	Kind     ArgumentKind
	Expected ValueType
	Value    string
	Depth    int
	Pos      int
}

// Instruction is one executable step of a program. Num is its 1-based
// index and Pos the byte offset of the instruction's head token.
type Instruction struct {
	Func string
	Args []Argument
	Num  int
	Pos  int
}

// Program is the immutable resolved form of a source text. It contains
// only plain data (strings, numbers, index tables), so one program can
// back any number of machines, concurrently.
//
// Labels maps a label name to the ordered instruction indices it was
// placed at; JumpDests associates an instruction with the label name its
// run behavior targets.
type Program struct {
	Instructions []Instruction
	Begin        int
	Labels       map[string][]int
	JumpDests    map[int]string
}

// LabelAfter returns the first occurrence of label strictly after
// instruction num.
func (p *Program) LabelAfter(label string, num int) (int, bool) {
	for _, n := range p.Labels[label] {
		if n > num {
			return n, true
		}
	}
	return 0, false
}

// LabelBefore returns the last occurrence of label strictly before
// instruction num.
func (p *Program) LabelBefore(label string, num int) (int, bool) {
	found := 0
	for _, n := range p.Labels[label] {
		if n >= num {
			break
		}
		found = n
	}
	return found, found != 0
}

// Builder accumulates a program during resolution. Compile-time
// behaviors receive it to place labels, record jump destinations, define
// macros and move the begin index. Cur is the 1-based index the
// instruction being resolved will occupy if it is emitted.
type Builder struct {
	Instructions []Instruction
	Begin        int
	Labels       map[string][]int
	JumpDests    map[int]string
	Macros       map[string]string
	IfLevel      int
	LoopLevel    int
	Cur          int
}

// NewBuilder returns an empty builder with the predefined macros.
func NewBuilder() *Builder {
	return &Builder{
		Labels:    make(map[string][]int),
		JumpDests: make(map[int]string),
		Macros: map[string]string{
			"pi":    "3.141592653589793",
			"e":     "2.718281828459045",
			"inf":   "inf",
			"ninf":  "-inf",
			"true":  "true",
			"false": "",
			"_1":    "1",
			"_2":    "2",
			"_3":    "3",
			"_4":    "4",
		},
	}
}

// PlaceLabel appends an occurrence of label at instruction index num,
// keeping the occurrence list ordered.
func (b *Builder) PlaceLabel(label string, num int) {
	nums := append(b.Labels[label], num)
	sort.Ints(nums)
	b.Labels[label] = nums
}

// Freeze discards the compile-time accumulators and returns the
// finished program.
func (b *Builder) Freeze() *Program {
	return &Program{
		Instructions: b.Instructions,
		Begin:        b.Begin,
		Labels:       b.Labels,
		JumpDests:    b.JumpDests,
	}
}
