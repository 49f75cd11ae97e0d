package value

// Kind is the type tag of a Value. It is also used on its own to declare
// method parameter and return types.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindStringArray
	KindIntArray
	KindFloatArray
	KindMap
	// KindInt64Array can appear in a declared signature but no Value carries
	// it and it has no native conversion.
	KindInt64Array
)

var kindNames = [...]string{
	KindNil:         "nil",
	KindBool:        "bool",
	KindInt:         "int",
	KindFloat:       "float",
	KindString:      "string",
	KindStringArray: "string_array",
	KindIntArray:    "int_array",
	KindFloatArray:  "float_array",
	KindMap:         "map",
	KindInt64Array:  "int64_array",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsReference reports whether values of this kind cross the native boundary
// as a transient reference rather than inline in a slot.
func (k Kind) IsReference() bool {
	switch k {
	case KindString, KindStringArray, KindIntArray, KindFloatArray, KindMap, KindInt64Array:
		return true
	default:
		return false
	}
}

// Valid reports whether k is a declared kind.
func (k Kind) Valid() bool {
	return int(k) < len(kindNames)
}

// CanConvert reports whether a value tagged from may be passed where to is
// expected.
func CanConvert(from, to Kind) bool {
	if from == to {
		return from.Valid()
	}
	switch {
	case from == KindInt && to == KindFloat:
		return true
	case from == KindBool && to == KindInt:
		return true
	}
	return false
}
