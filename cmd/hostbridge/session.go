package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/tetratelabs/wazero"

	"github.com/wippyai/hostbridge/bridge"
	"github.com/wippyai/hostbridge/native"
	"github.com/wippyai/hostbridge/signature"
	"github.com/wippyai/hostbridge/value"
	"github.com/wippyai/hostbridge/wazerohost"
)

// session is a loaded module with its declared methods registered.
type session struct {
	rt     wazero.Runtime
	bridge *bridge.Bridge
	env    *wazerohost.Env
	decls  []signature.Declaration
}

func openSession(ctx context.Context, wasmFile, witFile string) (*session, error) {
	wasmBytes, err := os.ReadFile(wasmFile)
	if err != nil {
		return nil, fmt.Errorf("read module: %w", err)
	}
	witText, err := os.ReadFile(witFile)
	if err != nil {
		return nil, fmt.Errorf("read declarations: %w", err)
	}

	rt := wazero.NewRuntime(ctx)
	if _, err := wazerohost.InstantiateImports(ctx, rt); err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("instantiate imports: %w", err)
	}
	mod, err := rt.Instantiate(ctx, wasmBytes)
	if err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("instantiate: %w", err)
	}

	b := bridge.New()
	decls, err := b.RegisterWIT(string(witText), func(d signature.Declaration) (native.MethodID, error) {
		return wazerohost.Lookup(mod, d.Name, d.Params, d.Return)
	})
	if err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("register: %w", err)
	}
	b.Init(mod)
	sort.Slice(decls, func(i, j int) bool { return decls[i].Name < decls[j].Name })

	return &session{
		rt:     rt,
		bridge: b,
		env:    wazerohost.New(),
		decls:  decls,
	}, nil
}

func (s *session) decl(name string) (signature.Declaration, bool) {
	for _, d := range s.decls {
		if d.Name == name {
			return d, true
		}
	}
	return signature.Declaration{}, false
}

func (s *session) call(ctx context.Context, name string, args []value.Value) (value.Value, error) {
	return s.bridge.Call(native.Attach(ctx, s.env), name, args...)
}

func (s *session) Close(ctx context.Context) {
	s.bridge.Reset()
	s.env.Close()
	s.rt.Close(ctx)
}
