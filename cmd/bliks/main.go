package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"bliks"
	"bliks/trace"
	"bliks/types"
	"bliks/vm"
)

func main() {
	registers := flag.Int("registers", 0, "Maximum register count (0 = unlimited)")
	dump := flag.Bool("dump", false, "Print the compiled program instead of running it")
	traceEnabled := flag.Bool("trace", false, "Enable execution tracing")
	traceFilter := flag.String("trace-filter", "", "Trace filter pattern (glob, e.g. 'jump*' or 'poll*')")
	flag.Parse()

	var filters []string
	if *traceFilter != "" {
		filters = strings.Split(*traceFilter, ",")
	}
	trace.Init(*traceEnabled, filters, os.Stderr)

	args := flag.Args()
	if len(args) == 0 {
		os.Exit(prompt(*registers, *dump))
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "bliks: %v\n", err)
		os.Exit(2)
	}
	in := bufio.NewReader(os.Stdin)
	os.Exit(run(string(src), args[0], args[1:], *registers, *dump, in))
}

// prompt reads one line per iteration and runs it to completion; each
// iteration is an independent program with fresh registers.
func prompt(maxRegs int, dump bool) int {
	in := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		line, err := in.ReadString('\n')
		if err == io.EOF {
			fmt.Println()
			return 0
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "bliks: %v\n", err)
			return 2
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		run(line, "prompt", nil, maxRegs, dump, in)
	}
}

// run compiles and executes one program, printing outputs as lines.
// Inputs pre-fill the machine's buffer; once they are exhausted, an
// input request reads another line from in.
func run(source, name string, inputs []string, maxRegs int, dump bool, in *bufio.Reader) int {
	prog, err := bliks.Compile(source, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, bliks.FormatError(err, source, name))
		return 1
	}
	if dump {
		dumpProgram(prog)
		return 0
	}

	m := bliks.NewMachine(prog, nil, maxRegs)
	for _, s := range inputs {
		m.Push(s)
	}
	for {
		running, out, err := m.Step()
		if err != nil {
			fmt.Fprintln(os.Stderr, bliks.FormatError(err, source, name))
			return 1
		}
		if !running {
			return 0
		}
		if out == nil {
			continue
		}
		if vm.NeedsInput(out) {
			line, err := in.ReadString('\n')
			if err != nil {
				fmt.Fprintln(os.Stderr, "bliks: ran out of input")
				return 1
			}
			m.Push(strings.TrimRight(line, "\r\n"))
			continue
		}
		fmt.Println(types.ToString(out))
	}
}

func dumpProgram(p *types.Program) {
	fmt.Printf("begin: %d\n", p.Begin)
	for _, inst := range p.Instructions {
		parts := make([]string, len(inst.Args))
		for i, a := range inst.Args {
			parts[i] = formatArg(a)
		}
		fmt.Printf("%4d  %s %s\n", inst.Num, inst.Func, strings.Join(parts, " "))
	}
	if len(p.Labels) > 0 {
		names := make([]string, 0, len(p.Labels))
		for name := range p.Labels {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Println("labels:")
		for _, name := range names {
			fmt.Printf("  %s -> %v\n", name, p.Labels[name])
		}
	}
	if len(p.JumpDests) > 0 {
		nums := make([]int, 0, len(p.JumpDests))
		for num := range p.JumpDests {
			nums = append(nums, num)
		}
		sort.Ints(nums)
		fmt.Println("jump destinations:")
		for _, num := range nums {
			fmt.Printf("  %d -> %s\n", num, p.JumpDests[num])
		}
	}
}

func formatArg(a types.Argument) string {
	if a.Kind == types.ArgRetrieval {
		return strings.Repeat("@", a.Depth) + a.Value
	}
	if types.TypeOf(a.Value) == types.String && a.Expected != types.Name {
		return fmt.Sprintf("%q", a.Value)
	}
	return a.Value
}
