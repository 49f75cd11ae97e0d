package wazerohost

import "github.com/tetratelabs/wazero/api"

// Minimal binary encoder for test guests. Every import comes from
// ModuleName, every function is exported under its name, and the module
// exports one page of memory as "memory".

type wasmImport struct {
	name    string
	params  []api.ValueType
	results []api.ValueType
}

type wasmFunc struct {
	name    string
	params  []api.ValueType
	results []api.ValueType
	locals  []api.ValueType
	body    []byte
}

func buildModule(imports []wasmImport, funcs []wasmFunc) []byte {
	types := uleb(nil, uint32(len(imports)+len(funcs)))
	for _, im := range imports {
		types = funcType(types, im.params, im.results)
	}
	for _, f := range funcs {
		types = funcType(types, f.params, f.results)
	}

	imps := uleb(nil, uint32(len(imports)))
	for i, im := range imports {
		imps = wasmName(imps, ModuleName)
		imps = wasmName(imps, im.name)
		imps = append(imps, 0x00)
		imps = uleb(imps, uint32(i))
	}

	fns := uleb(nil, uint32(len(funcs)))
	for i := range funcs {
		fns = uleb(fns, uint32(len(imports)+i))
	}

	exports := uleb(nil, uint32(len(funcs)+1))
	for i, f := range funcs {
		exports = wasmName(exports, f.name)
		exports = append(exports, 0x00)
		exports = uleb(exports, uint32(len(imports)+i))
	}
	exports = wasmName(exports, "memory")
	exports = append(exports, 0x02, 0x00)

	code := uleb(nil, uint32(len(funcs)))
	for _, f := range funcs {
		body := uleb(nil, uint32(len(f.locals)))
		for _, l := range f.locals {
			body = append(body, 0x01, l)
		}
		body = append(body, f.body...)
		body = append(body, 0x0b)
		code = uleb(code, uint32(len(body)))
		code = append(code, body...)
	}

	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	out = section(out, 1, types)
	out = section(out, 2, imps)
	out = section(out, 3, fns)
	out = section(out, 5, []byte{0x01, 0x00, 0x01})
	out = section(out, 7, exports)
	out = section(out, 10, code)
	return out
}

func funcType(b []byte, params, results []api.ValueType) []byte {
	b = append(b, 0x60)
	b = uleb(b, uint32(len(params)))
	b = append(b, params...)
	b = uleb(b, uint32(len(results)))
	return append(b, results...)
}

func wasmName(b []byte, s string) []byte {
	b = uleb(b, uint32(len(s)))
	return append(b, s...)
}

func section(b []byte, id byte, content []byte) []byte {
	b = append(b, id)
	b = uleb(b, uint32(len(content)))
	return append(b, content...)
}

func uleb(b []byte, v uint32) []byte {
	for {
		c := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b = append(b, c|0x80)
			continue
		}
		return append(b, c)
	}
}
