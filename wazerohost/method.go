package wazerohost

import (
	"slices"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/hostbridge/errors"
	"github.com/wippyai/hostbridge/signature"
	"github.com/wippyai/hostbridge/value"
)

// Method is the MethodID of an exported guest function.
type Method struct {
	module api.Module
	fn     api.Function
	name   string
	params []value.Kind
	ret    value.Kind
}

func (m *Method) Name() string { return m.name }

// Lookup resolves an exported function of mod and checks that its core
// signature carries params and ret.
func Lookup(mod api.Module, name string, params []value.Kind, ret value.Kind) (*Method, error) {
	fn := mod.ExportedFunction(name)
	if fn == nil {
		return nil, errors.New(errors.PhaseRegister, errors.KindInvalidMethod).
			Method(name).
			Detail("module %q has no exported function", mod.Name()).
			Build()
	}

	in, out, ok := signature.CoreSignature(params, ret)
	if !ok {
		return nil, errors.New(errors.PhaseRegister, errors.KindUnsupportedKind).
			Method(name).
			Detail("declared kinds have no core wasm form").
			Build()
	}

	def := fn.Definition()
	if !slices.Equal(def.ParamTypes(), in) || !slices.Equal(def.ResultTypes(), out) {
		return nil, errors.New(errors.PhaseRegister, errors.KindInvalidMethod).
			Method(name).
			Detail("export has signature %s -> %s, declared %s -> %s",
				typeNames(def.ParamTypes()), typeNames(def.ResultTypes()),
				typeNames(in), typeNames(out)).
			Build()
	}

	return &Method{
		module: mod,
		fn:     fn,
		name:   name,
		params: append([]value.Kind(nil), params...),
		ret:    ret,
	}, nil
}

func typeNames(types []api.ValueType) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = api.ValueTypeName(t)
	}
	return names
}
