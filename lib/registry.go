package lib

import (
	"fmt"
	"sort"

	"bliks/types"
)

// CompileBehavior participates in resolution: it runs while the program
// is being built, with the in-progress builder and the literal argument
// values. Returning an error aborts the resolve.
type CompileBehavior func(b *types.Builder, args []types.Value) error

// RunBehavior executes one instruction at run time against the current
// step context and the expanded argument values.
type RunBehavior func(ctx *Context, args []types.Value) error

// FuncDescriptor describes one built-in: its parameter list and its
// compile-time and/or run-time behavior. At least one behavior is
// always present.
type FuncDescriptor struct {
	Name    string
	Params  types.ParameterList
	Compile CompileBehavior
	Run     RunBehavior
}

// Registry maps function names to descriptors. It is immutable once
// built and safe to share between machines.
type Registry struct {
	funcs map[string]*FuncDescriptor
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (*FuncDescriptor, bool) {
	d, ok := r.funcs[name]
	return d, ok
}

// Names returns all registered function names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) register(name, spec string, compile CompileBehavior, run RunBehavior) {
	if _, dup := r.funcs[name]; dup {
		panic(fmt.Sprintf("duplicate built-in %q", name))
	}
	if compile == nil && run == nil {
		panic(fmt.Sprintf("built-in %q has no behavior", name))
	}
	r.funcs[name] = &FuncDescriptor{
		Name:    name,
		Params:  types.MustParams(spec),
		Compile: compile,
		Run:     run,
	}
}

// NewRegistry builds a registry holding the full standard library.
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]*FuncDescriptor)}

	// Control flow scaffolding
	r.register("begin", "", compileBegin, nil)
	r.register(">", "!N", compileLabel, nil)
	r.register("let", "!N !s", compileLet, nil)
	r.register("func", "!N", compileFunc, nil)
	r.register("repeat", "", compileRepeat, nil)
	r.register("while", "s", compileWhile, runWhile)
	r.register("for", "p n n n?", compileWhile, runFor)
	r.register("end", "", compileEnd, runEnd)
	r.register("endif", "s", compileEndif, runEndif)
	r.register("if", "s", compileIf, runIf)
	r.register("ifnot", "s", compileIf, runIfnot)
	r.register("else", "", compileElse, nil)
	r.register("break", "", compileBreak, runBreak)
	r.register("continue", "", compileContinue, runContinue)
	r.register("goto", "!N", nil, runGoto)
	r.register("jump", "!N", nil, runJump)
	r.register("call", "!N", nil, runCall)
	r.register("return", "", nil, runReturn)
	r.register("stop", "", nil, runStop)
	r.register("throw", "s", nil, runThrow)
	r.register("assert", "s s?", nil, runAssert)
	r.register("===", "", nil, runBoundary)

	// I/O
	r.register("read", "p", nil, runRead)
	r.register("readnum", "p", nil, runReadnum)
	r.register("poll", "p", nil, runPoll)
	r.register("pollnum", "p", nil, runPollnum)
	r.register("write", "s", nil, runWrite)
	r.register("writef", "s s*", nil, runWritef)

	// Arithmetic
	r.register("add", "p n n*", nil, runAdd)
	r.register("sub", "p n n*", nil, runSub)
	r.register("mul", "p n n*", nil, runMul)
	r.register("div", "p n n*", nil, runDiv)
	r.register("mod", "p n n", nil, runMod)
	r.register("pow", "p n n", nil, runPow)
	r.register("neg", "p n", nil, runNeg)
	r.register("abs", "p n", nil, runAbs)
	r.register("floor", "p n", nil, runFloor)
	r.register("ceil", "p n", nil, runCeil)
	r.register("round", "p n", nil, runRound)
	r.register("sqrt", "p n", nil, runSqrt)
	r.register("min", "p n n*", nil, runMin)
	r.register("max", "p n n*", nil, runMax)
	r.register("random", "p n n", nil, runRandom)
	r.register("tonum", "p s", nil, runTonum)
	r.register("set", "p s", nil, runSet)

	// Strings
	r.register("concat", "p s s*", nil, runConcat)
	r.register("upper", "p s", nil, runUpper)
	r.register("lower", "p s", nil, runLower)
	r.register("len", "p s", nil, runLen)
	r.register("trim", "p s", nil, runTrim)
	r.register("replace", "p s s s", nil, runReplace)
	r.register("slice", "p s n n", nil, runSlice)
	r.register("find", "p s s", nil, runFind)

	// Logic and comparison
	r.register("equal", "p s s*", nil, runEqual)
	r.register("not", "p s", nil, runNot)
	r.register("and", "p s s*", nil, runAnd)
	r.register("or", "p s s*", nil, runOr)
	r.register("gt", "p n n", nil, runGt)
	r.register("lt", "p n n", nil, runLt)
	r.register("ge", "p n n", nil, runGe)
	r.register("le", "p n n", nil, runLe)

	// Crypto and encoding
	r.register("hash", "p !s s", nil, runHash)
	r.register("encode64", "p s", nil, runEncode64)
	r.register("decode64", "p s", nil, runDecode64)
	r.register("bcrypt", "p s", nil, runBcrypt)
	r.register("bcryptcheck", "p s s", nil, runBcryptcheck)
	r.register("crypt", "p s s", nil, runCrypt)
	r.register("checkpass", "p s s", nil, runCheckpass)

	return r
}

var std = NewRegistry()

// Default returns the shared standard library. It is built once and
// read-only; callers must not mutate it.
func Default() *Registry {
	return std
}
