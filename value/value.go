package value

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Value is a tagged union over the kinds the engine can pass across the
// bridge. The zero Value is Nil.
type Value struct {
	s    string
	m    map[string]Value
	ss   []string
	is   []int32
	fs   []float32
	i    int64
	f    float64
	kind Kind
	b    bool
}

func Nil() Value { return Value{} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

func Int(i int64) Value { return Value{kind: KindInt, i: i} }

func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

func String(s string) Value { return Value{kind: KindString, s: s} }

// StringArray copies elems.
func StringArray(elems ...string) Value {
	return Value{kind: KindStringArray, ss: append([]string{}, elems...)}
}

// IntArray copies elems.
func IntArray(elems ...int32) Value {
	return Value{kind: KindIntArray, is: append([]int32{}, elems...)}
}

// FloatArray copies elems.
func FloatArray(elems ...float32) Value {
	return Value{kind: KindFloatArray, fs: append([]float32{}, elems...)}
}

// Map copies the top level of m. Nested values are immutable and shared.
func Map(m map[string]Value) Value {
	cp := make(map[string]Value, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return Value{kind: KindMap, m: cp}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNil() bool { return v.kind == KindNil }

// AsBool returns the boolean payload, or false for other kinds.
func (v Value) AsBool() bool { return v.b }

// AsInt returns the integer payload. Bool values report 0 or 1.
func (v Value) AsInt() int64 {
	if v.kind == KindBool {
		if v.b {
			return 1
		}
		return 0
	}
	return v.i
}

// AsFloat returns the float payload. Int values are widened.
func (v Value) AsFloat() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

func (v Value) AsString() string { return v.s }

// The array and map accessors return the backing storage; callers must not
// modify it.

func (v Value) AsStringArray() []string { return v.ss }

func (v Value) AsIntArray() []int32 { return v.is }

func (v Value) AsFloatArray() []float32 { return v.fs }

func (v Value) AsMap() map[string]Value { return v.m }

// Len returns the element count of arrays, maps and strings, 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindString:
		return len(v.s)
	case KindStringArray:
		return len(v.ss)
	case KindIntArray:
		return len(v.is)
	case KindFloatArray:
		return len(v.fs)
	case KindMap:
		return len(v.m)
	}
	return 0
}

// Equal reports deep equality. NaN floats compare equal to themselves so that
// round trips through the native boundary can be checked.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNil:
		return true
	case KindBool:
		return a.b == b.b
	case KindInt:
		return a.i == b.i
	case KindFloat:
		return a.f == b.f || (math.IsNaN(a.f) && math.IsNaN(b.f))
	case KindString:
		return a.s == b.s
	case KindStringArray:
		if len(a.ss) != len(b.ss) {
			return false
		}
		for i := range a.ss {
			if a.ss[i] != b.ss[i] {
				return false
			}
		}
		return true
	case KindIntArray:
		if len(a.is) != len(b.is) {
			return false
		}
		for i := range a.is {
			if a.is[i] != b.is[i] {
				return false
			}
		}
		return true
	case KindFloatArray:
		if len(a.fs) != len(b.fs) {
			return false
		}
		for i := range a.fs {
			x, y := a.fs[i], b.fs[i]
			if x != y && !(math.IsNaN(float64(x)) && math.IsNaN(float64(y))) {
				return false
			}
		}
		return true
	case KindMap:
		if len(a.m) != len(b.m) {
			return false
		}
		for k, av := range a.m {
			bv, ok := b.m[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders v for logs and the CLI. Map keys are sorted.
func (v Value) String() string {
	var b strings.Builder
	v.write(&b)
	return b.String()
}

func (v Value) write(b *strings.Builder) {
	switch v.kind {
	case KindNil:
		b.WriteString("nil")
	case KindBool:
		b.WriteString(strconv.FormatBool(v.b))
	case KindInt:
		b.WriteString(strconv.FormatInt(v.i, 10))
	case KindFloat:
		b.WriteString(strconv.FormatFloat(v.f, 'g', -1, 64))
	case KindString:
		b.WriteString(strconv.Quote(v.s))
	case KindStringArray:
		b.WriteByte('[')
		for i, s := range v.ss {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Quote(s))
		}
		b.WriteByte(']')
	case KindIntArray:
		b.WriteByte('[')
		for i, n := range v.is {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.FormatInt(int64(n), 10))
		}
		b.WriteByte(']')
	case KindFloatArray:
		b.WriteByte('[')
		for i, f := range v.fs {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.FormatFloat(float64(f), 'g', -1, 32))
		}
		b.WriteByte(']')
	case KindMap:
		keys := make([]string, 0, len(v.m))
		for k := range v.m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Quote(k))
			b.WriteString(": ")
			v.m[k].write(b)
		}
		b.WriteByte('}')
	default:
		fmt.Fprintf(b, "<%s>", v.kind)
	}
}
