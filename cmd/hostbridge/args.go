package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/wippyai/hostbridge/value"
)

// parseArgs decodes a JSON array into values shaped by the declared
// parameter kinds. Elements past the declared arity are decoded by their
// JSON shape so the call can report the arity error.
func parseArgs(raw string, kinds []value.Kind) ([]value.Value, error) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("arguments must be a JSON array: %w", err)
	}

	args := make([]value.Value, len(items))
	for i, item := range items {
		kind := value.KindNil
		declared := i < len(kinds)
		if declared {
			kind = kinds[i]
		}
		x, err := decodeJSON(item)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		if declared {
			args[i], err = toValue(x, kind)
		} else {
			args[i], err = infer(x)
		}
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
	}
	return args, nil
}

// parseField decodes one interactive input. Text that is not valid JSON is
// taken literally for string parameters.
func parseField(text string, kind value.Kind) (value.Value, error) {
	x, err := decodeJSON([]byte(text))
	if err != nil {
		if kind == value.KindString {
			return value.String(text), nil
		}
		return value.Nil(), err
	}
	return toValue(x, kind)
}

func decodeJSON(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return x, nil
}

func toValue(x any, kind value.Kind) (value.Value, error) {
	switch kind {
	case value.KindStringArray:
		items, err := list(x)
		if err != nil {
			return value.Nil(), err
		}
		out := make([]string, len(items))
		for i, it := range items {
			s, ok := it.(string)
			if !ok {
				return value.Nil(), fmt.Errorf("element %d: want string, got %v", i, it)
			}
			out[i] = s
		}
		return value.StringArray(out...), nil

	case value.KindIntArray:
		items, err := list(x)
		if err != nil {
			return value.Nil(), err
		}
		out := make([]int32, len(items))
		for i, it := range items {
			n, ok := it.(json.Number)
			if !ok {
				return value.Nil(), fmt.Errorf("element %d: want integer, got %v", i, it)
			}
			v, err := strconv.ParseInt(n.String(), 10, 32)
			if err != nil {
				return value.Nil(), fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = int32(v)
		}
		return value.IntArray(out...), nil

	case value.KindFloatArray:
		items, err := list(x)
		if err != nil {
			return value.Nil(), err
		}
		out := make([]float32, len(items))
		for i, it := range items {
			n, ok := it.(json.Number)
			if !ok {
				return value.Nil(), fmt.Errorf("element %d: want number, got %v", i, it)
			}
			v, err := n.Float64()
			if err != nil {
				return value.Nil(), fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = float32(v)
		}
		return value.FloatArray(out...), nil

	case value.KindFloat:
		if n, ok := x.(json.Number); ok {
			f, err := n.Float64()
			if err != nil {
				return value.Nil(), err
			}
			return value.Float(f), nil
		}
	}
	return infer(x)
}

// infer maps a decoded JSON value onto the closest value kind. Integral
// numbers become Int, others Float. Arrays must be homogeneous.
func infer(x any) (value.Value, error) {
	switch x := x.(type) {
	case nil:
		return value.Nil(), nil
	case bool:
		return value.Bool(x), nil
	case string:
		return value.String(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return value.Int(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return value.Nil(), err
		}
		return value.Float(f), nil
	case []any:
		return inferArray(x)
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := make(map[string]value.Value, len(x))
		for _, k := range keys {
			v, err := infer(x[k])
			if err != nil {
				return value.Nil(), fmt.Errorf("key %q: %w", k, err)
			}
			m[k] = v
		}
		return value.Map(m), nil
	}
	return value.Nil(), fmt.Errorf("unsupported JSON value %T", x)
}

func inferArray(items []any) (value.Value, error) {
	if len(items) == 0 {
		return value.Nil(), fmt.Errorf("cannot infer the kind of an empty array")
	}
	switch items[0].(type) {
	case string:
		return toValue(items, value.KindStringArray)
	case json.Number:
		ints := true
		for _, it := range items {
			n, ok := it.(json.Number)
			if !ok {
				return value.Nil(), fmt.Errorf("mixed array")
			}
			if i, err := n.Int64(); err != nil || i < math.MinInt32 || i > math.MaxInt32 {
				ints = false
			}
		}
		if ints {
			return toValue(items, value.KindIntArray)
		}
		return toValue(items, value.KindFloatArray)
	}
	return value.Nil(), fmt.Errorf("unsupported array element %T", items[0])
}

func list(x any) ([]any, error) {
	items, ok := x.([]any)
	if !ok {
		return nil, fmt.Errorf("want JSON array, got %v", x)
	}
	return items, nil
}
