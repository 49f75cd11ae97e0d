package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/hostbridge/bridge"
	"github.com/wippyai/hostbridge/signature"
	"github.com/wippyai/hostbridge/wazerohost"
)

func main() {
	var (
		wasmFile    = flag.String("wasm", "", "Path to core wasm module")
		witFile     = flag.String("wit", "", "Path to WIT function declarations")
		funcName    = flag.String("call", "", "Method to call")
		argsJSON    = flag.String("args", "[]", "Arguments as a JSON array")
		list        = flag.Bool("list", false, "List declared methods and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Log bridge activity to stderr")
	)
	flag.Parse()

	if *wasmFile == "" || *witFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: hostbridge -wasm <module.wasm> -wit <decls.wit> -call name [-args '[1, \"x\"]']")
		fmt.Fprintln(os.Stderr, "       hostbridge -wasm <module.wasm> -wit <decls.wit> -list")
		fmt.Fprintln(os.Stderr, "       hostbridge -wasm <module.wasm> -wit <decls.wit> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			bridge.SetLogger(l)
			wazerohost.SetLogger(l)
			defer l.Sync()
		}
	}

	if *interactive {
		if err := runInteractive(*wasmFile, *witFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*wasmFile, *witFile, *funcName, *argsJSON, *list); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(wasmFile, witFile, funcName, argsJSON string, listOnly bool) error {
	ctx := context.Background()
	styled := term.IsTerminal(int(os.Stdout.Fd()))

	s, err := openSession(ctx, wasmFile, witFile)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	if listOnly || funcName == "" {
		fmt.Printf("Module: %s\n\nMethods:\n", wasmFile)
		for _, d := range s.decls {
			desc, err := signature.MethodSignature(d.Params, d.Return)
			if err != nil {
				desc = "?"
			}
			fmt.Printf("  %s  %s\n", formatDecl(d, styled), desc)
		}
		if !listOnly {
			fmt.Printf("\nUse -call to specify a method to call.\n")
		}
		return nil
	}

	d, ok := s.decl(funcName)
	if !ok {
		return fmt.Errorf("method %q is not declared in %s", funcName, witFile)
	}
	args, err := parseArgs(argsJSON, d.Params)
	if err != nil {
		return fmt.Errorf("parse args: %w", err)
	}

	result, err := s.call(ctx, funcName, args)
	if err != nil {
		return fmt.Errorf("call %s: %w", funcName, err)
	}

	fmt.Printf("Result: %s\n", formatResult(result, styled))
	return nil
}
