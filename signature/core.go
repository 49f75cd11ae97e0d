package signature

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/hostbridge/value"
)

// CoreType returns the core wasm value type carrying a kind's slot.
// Reference kinds travel as i32 handles. Nil has no value and reports false.
func CoreType(k value.Kind) (api.ValueType, bool) {
	switch k {
	case value.KindBool:
		return api.ValueTypeI32, true
	case value.KindInt:
		return api.ValueTypeI64, true
	case value.KindFloat:
		return api.ValueTypeF64, true
	case value.KindString, value.KindStringArray, value.KindIntArray, value.KindFloatArray, value.KindMap:
		return api.ValueTypeI32, true
	}
	return 0, false
}

// CoreSignature returns the core param and result types of a method. Nil
// parameters travel as a null i32 handle.
func CoreSignature(params []value.Kind, ret value.Kind) ([]api.ValueType, []api.ValueType, bool) {
	in := make([]api.ValueType, len(params))
	for i, p := range params {
		if p == value.KindNil {
			in[i] = api.ValueTypeI32
			continue
		}
		t, ok := CoreType(p)
		if !ok {
			return nil, nil, false
		}
		in[i] = t
	}

	if ret == value.KindNil {
		return in, nil, true
	}
	t, ok := CoreType(ret)
	if !ok {
		return nil, nil, false
	}
	return in, []api.ValueType{t}, true
}
