package vm

import (
	"bliks/lib"
	"bliks/parser"
	"bliks/types"
)

// Resolve turns parsed instruction lines into an executable program. It
// performs back-retrieval lowering, macro expansion and type checking
// per line, runs the compile-time half of the library, and emits one
// instruction per line that has a run behavior. A nil registry selects
// the default library.
func Resolve(lines []parser.Line, reg *lib.Registry) (*types.Program, error) {
	if reg == nil {
		reg = lib.Default()
	}
	b := types.NewBuilder()
	for _, line := range lines {
		if err := resolveLine(b, reg, line.Tokens); err != nil {
			return nil, err
		}
	}
	if b.Begin == 0 {
		b.Begin = 1
	}
	return b.Freeze(), nil
}

func resolveLine(b *types.Builder, reg *lib.Registry, tokens []types.Token) error {
	head := tokens[0]
	if head.Type != types.TokenName {
		return types.Errorf(head.Pos, "expected a function name, but got a %s", head.Type)
	}
	desc, ok := reg.Lookup(head.Value)
	if !ok {
		return types.Errorf(head.Pos, "no such function '%s'", head.Value)
	}
	args := append([]types.Token(nil), tokens[1:]...)

	if err := checkArity(desc, len(args), head.Pos); err != nil {
		return err
	}
	if err := lowerBackRetrievals(args); err != nil {
		return err
	}
	if err := expandMacros(b, desc, args); err != nil {
		return err
	}
	if err := checkTypes(desc, args); err != nil {
		return err
	}

	built := make([]types.Argument, len(args))
	for i := range args {
		built[i] = buildArgument(&args[i], desc.Params.At(i+1).Type)
	}

	b.Cur = len(b.Instructions) + 1
	if desc.Compile != nil {
		if err := desc.Compile(b, expandCompile(built)); err != nil {
			return types.Errorf(head.Pos, "%s", err)
		}
	}
	if desc.Run != nil {
		b.Instructions = append(b.Instructions, types.Instruction{
			Func: head.Value,
			Args: built,
			Num:  b.Cur,
			Pos:  head.Pos,
		})
	}
	return nil
}

func checkArity(desc *lib.FuncDescriptor, n, pos int) error {
	if n < desc.Params.Min {
		return types.Errorf(pos, "function '%s' expects at least %d arguments, but got %d",
			desc.Name, desc.Params.Min, n)
	}
	if desc.Params.Max >= 0 && n > desc.Params.Max {
		return types.Errorf(pos, "function '%s' expects at most %d arguments, but got %d",
			desc.Name, desc.Params.Max, n)
	}
	return nil
}

// lowerBackRetrievals rewrites each '<' into a retrieval of the first
// argument, one level deeper than the first argument itself.
func lowerBackRetrievals(args []types.Token) error {
	if len(args) == 0 {
		return nil
	}
	if args[0].Type == types.TokenBackRetrieval {
		return types.Errorf(args[0].Pos, "the first argument cannot be a back retrieval")
	}
	for i := 1; i < len(args); i++ {
		if args[i].Type != types.TokenBackRetrieval {
			continue
		}
		inner := args[0]
		depth := 0
		if args[0].Type == types.TokenRetrieval {
			inner = *args[0].Inner
			depth = args[0].Depth
		}
		if inner.Type == types.TokenBackRetrieval {
			return types.Errorf(args[i].Pos, "a back retrieval cannot appear inside a retrieval")
		}
		in := inner
		args[i] = types.Token{Type: types.TokenRetrieval, Inner: &in, Depth: depth + 1, Pos: args[i].Pos}
	}
	return nil
}

// expandMacros replaces name tokens with their macro values wherever the
// parameter does not expect a name, and always inside retrievals.
func expandMacros(b *types.Builder, desc *lib.FuncDescriptor, args []types.Token) error {
	for i := range args {
		tok := &args[i]
		switch tok.Type {
		case types.TokenName:
			if desc.Params.At(i+1).Type == types.Name {
				continue
			}
			v, ok := b.Macros[tok.Value]
			if !ok {
				return types.Errorf(tok.Pos, "macro '%s' is not defined", tok.Value)
			}
			*tok = types.Token{Type: types.TokenLiteral, Value: v, Pos: tok.Pos}
		case types.TokenRetrieval:
			if tok.Inner.Type != types.TokenName {
				continue
			}
			v, ok := b.Macros[tok.Inner.Value]
			if !ok {
				return types.Errorf(tok.Inner.Pos, "macro '%s' is not defined", tok.Inner.Value)
			}
			tok.Inner = &types.Token{Type: types.TokenLiteral, Value: v, Pos: tok.Inner.Pos}
		}
	}
	return nil
}

// checkTypes enforces the three per-argument rules: a retrieval must
// start from a pointer, a literal must satisfy its parameter type, and a
// fixed parameter cannot be supplied as a retrieval.
func checkTypes(desc *lib.FuncDescriptor, args []types.Token) error {
	for i := range args {
		tok := &args[i]
		p := desc.Params.At(i + 1)
		switch tok.Type {
		case types.TokenRetrieval:
			t := types.TypeOfToken(tok.Inner)
			if t != types.Pointer {
				return types.Errorf(tok.Inner.Pos, "a retrieval must target a pointer, but got '%s' (a %s)",
					tok.Inner.Value, t)
			}
			if p.Fixed {
				return types.Errorf(tok.Pos, "argument %d cannot be a retrieval", i+1)
			}
		case types.TokenLiteral:
			t := types.TypeOf(tok.Value)
			if !types.Is(t, p.Type) {
				return types.Errorf(tok.Pos, "function expects a %s for argument %d, but got '%s' (a %s)",
					p.Type, i+1, tok.Value, t)
			}
		}
	}
	return nil
}

func buildArgument(tok *types.Token, expected types.ValueType) types.Argument {
	if tok.Type == types.TokenRetrieval {
		return types.Argument{
			Kind:     types.ArgRetrieval,
			Expected: expected,
			Value:    tok.Inner.Value,
			Depth:    tok.Depth,
			Pos:      tok.Pos,
		}
	}
	return types.Argument{Kind: types.ArgValue, Expected: expected, Value: tok.Value, Pos: tok.Pos}
}
