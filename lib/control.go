package lib

import (
	"errors"
	"fmt"
	"strconv"

	"bliks/types"
)

// The control-flow family. Conditionals and loops are resolved to label
// jumps at compile time: each scope kind keeps a nesting counter, and the
// compile behaviors place "_ELSE<n>", "_LOOP<n>" and "_END<n>" labels and
// per-instruction jump destinations in the program's side tables. Run
// behaviors then only ever follow a recorded destination.

func elseLabel(level int) string { return "_ELSE" + strconv.Itoa(level) }
func loopLabel(level int) string { return "_LOOP" + strconv.Itoa(level) }
func endLabel(level int) string  { return "_END" + strconv.Itoa(level) }

func compileBegin(b *types.Builder, args []types.Value) error {
	if b.Begin != 0 {
		return errors.New("beginning has already been defined")
	}
	b.Begin = b.Cur
	return nil
}

func compileLabel(b *types.Builder, args []types.Value) error {
	b.PlaceLabel(types.ToString(args[0]), b.Cur)
	return nil
}

func compileLet(b *types.Builder, args []types.Value) error {
	b.Macros[types.ToString(args[0])] = types.ToString(args[1])
	return nil
}

func compileFunc(b *types.Builder, args []types.Value) error {
	name := types.ToString(args[0])
	if _, exists := b.Labels[name]; exists {
		return fmt.Errorf("cannot define function '%s' because this label already exists", name)
	}
	b.PlaceLabel(name, b.Cur)
	return nil
}

func compileIf(b *types.Builder, args []types.Value) error {
	b.IfLevel++
	b.JumpDests[b.Cur] = elseLabel(b.IfLevel)
	return nil
}

func compileElse(b *types.Builder, args []types.Value) error {
	if b.IfLevel == 0 {
		return errors.New("else without a matching if")
	}
	b.PlaceLabel(elseLabel(b.IfLevel), b.Cur)
	b.IfLevel--
	return nil
}

func compileRepeat(b *types.Builder, args []types.Value) error {
	b.LoopLevel++
	b.PlaceLabel(loopLabel(b.LoopLevel), b.Cur)
	return nil
}

// compileWhile serves both while and for: a loop head that can also be
// exited forward.
func compileWhile(b *types.Builder, args []types.Value) error {
	b.LoopLevel++
	b.PlaceLabel(loopLabel(b.LoopLevel), b.Cur)
	b.JumpDests[b.Cur] = endLabel(b.LoopLevel)
	return nil
}

func compileEnd(b *types.Builder, args []types.Value) error {
	if b.LoopLevel == 0 {
		return errors.New("end without a matching loop")
	}
	b.JumpDests[b.Cur] = loopLabel(b.LoopLevel)
	b.PlaceLabel(endLabel(b.LoopLevel), b.Cur+1)
	b.LoopLevel--
	return nil
}

func compileEndif(b *types.Builder, args []types.Value) error {
	if b.LoopLevel == 0 {
		return errors.New("endif used outside of a loop")
	}
	b.JumpDests[b.Cur] = endLabel(b.LoopLevel)
	return nil
}

func compileBreak(b *types.Builder, args []types.Value) error {
	if b.LoopLevel == 0 {
		return errors.New("break used outside of a loop")
	}
	b.JumpDests[b.Cur] = endLabel(b.LoopLevel)
	return nil
}

func compileContinue(b *types.Builder, args []types.Value) error {
	if b.LoopLevel == 0 {
		return errors.New("continue used outside of a loop")
	}
	b.JumpDests[b.Cur] = loopLabel(b.LoopLevel)
	return nil
}

// destination returns the label recorded for the executing instruction.
func destination(ctx *Context) (string, error) {
	label, ok := ctx.Program.JumpDests[ctx.Cur]
	if !ok {
		return "", fmt.Errorf("no jump destination recorded for instruction %d", ctx.Cur)
	}
	return label, nil
}

func jumpForward(ctx *Context, label string) error {
	num, ok := ctx.Program.LabelAfter(label, ctx.Cur)
	if !ok {
		return fmt.Errorf("no occurrence of label '%s' after instruction %d", label, ctx.Cur)
	}
	ctx.Next = num
	return nil
}

func jumpBackward(ctx *Context, label string) error {
	num, ok := ctx.Program.LabelBefore(label, ctx.Cur)
	if !ok {
		return fmt.Errorf("no occurrence of label '%s' before instruction %d", label, ctx.Cur)
	}
	ctx.Next = num
	return nil
}

func jumpForwardDest(ctx *Context) error {
	label, err := destination(ctx)
	if err != nil {
		return err
	}
	return jumpForward(ctx, label)
}

func jumpBackwardDest(ctx *Context) error {
	label, err := destination(ctx)
	if err != nil {
		return err
	}
	return jumpBackward(ctx, label)
}

func runIf(ctx *Context, args []types.Value) error {
	if !truthy(args[0]) {
		return jumpForwardDest(ctx)
	}
	return nil
}

func runIfnot(ctx *Context, args []types.Value) error {
	if truthy(args[0]) {
		return jumpForwardDest(ctx)
	}
	return nil
}

func runWhile(ctx *Context, args []types.Value) error {
	if !truthy(args[0]) {
		return jumpForwardDest(ctx)
	}
	return nil
}

func runEndif(ctx *Context, args []types.Value) error {
	if !truthy(args[0]) {
		return jumpForwardDest(ctx)
	}
	return nil
}

func runEnd(ctx *Context, args []types.Value) error {
	return jumpBackwardDest(ctx)
}

func runBreak(ctx *Context, args []types.Value) error {
	return jumpForwardDest(ctx)
}

func runContinue(ctx *Context, args []types.Value) error {
	return jumpBackwardDest(ctx)
}

// runFor advances a counting loop: it stores i+step into the loop
// register and leaves the loop once the new value passes stop in the
// direction of the step.
func runFor(ctx *Context, args []types.Value) error {
	ptr := args[0].(float64)
	i := args[1].(float64)
	stop := args[2].(float64)
	step := 1.0
	if len(args) == 4 {
		step = args[3].(float64)
	}
	if step == 0 {
		return errors.New("for loop step cannot be zero")
	}
	next := i + step
	if err := ctx.Store(ptr, next); err != nil {
		return err
	}
	if (step > 0 && next > stop) || (step < 0 && next < stop) {
		return jumpForwardDest(ctx)
	}
	return nil
}

func runGoto(ctx *Context, args []types.Value) error {
	name := types.ToString(args[0])
	nums := ctx.Program.Labels[name]
	switch {
	case len(nums) == 0:
		return fmt.Errorf("no such label '%s'", name)
	case len(nums) > 1:
		return fmt.Errorf("label '%s' is defined more than once", name)
	}
	ctx.Next = nums[0]
	return nil
}

func runJump(ctx *Context, args []types.Value) error {
	return jumpForward(ctx, types.ToString(args[0]))
}

func runCall(ctx *Context, args []types.Value) error {
	if ctx.Return != 0 {
		return errors.New("call cannot be nested inside another call")
	}
	ctx.Return = ctx.Cur
	return runGoto(ctx, args)
}

func runReturn(ctx *Context, args []types.Value) error {
	if ctx.Return == 0 {
		return errors.New("return without a matching call")
	}
	ctx.Next = ctx.Return + 1
	ctx.Return = 0
	return nil
}

func runStop(ctx *Context, args []types.Value) error {
	ctx.Next = -1
	return nil
}

func runThrow(ctx *Context, args []types.Value) error {
	return errors.New(types.ToString(args[0]))
}

func runAssert(ctx *Context, args []types.Value) error {
	if truthy(args[0]) {
		return nil
	}
	msg := "value was false"
	if len(args) == 2 {
		msg = types.ToString(args[1])
	}
	return errors.New(msg)
}

func runBoundary(ctx *Context, args []types.Value) error {
	return errors.New("reached === boundary")
}
