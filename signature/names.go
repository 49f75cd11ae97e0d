package signature

import "github.com/wippyai/hostbridge/value"

var kindsByName = map[string]value.Kind{
	// host runtime names
	"void":                             value.KindNil,
	"boolean":                          value.KindBool,
	"int":                              value.KindInt,
	"long":                             value.KindInt,
	"float":                            value.KindFloat,
	"double":                           value.KindFloat,
	"java.lang.String":                 value.KindString,
	"[Ljava.lang.String;":              value.KindStringArray,
	"[I":                               value.KindIntArray,
	"[F":                               value.KindFloatArray,
	"[J":                               value.KindInt64Array,
	"org.godotengine.godot.Dictionary": value.KindMap,

	// engine-side aliases
	"nil":        value.KindNil,
	"bool":       value.KindBool,
	"string":     value.KindString,
	"string[]":   value.KindStringArray,
	"int[]":      value.KindIntArray,
	"float[]":    value.KindFloatArray,
	"long[]":     value.KindInt64Array,
	"dictionary": value.KindMap,
	"map":        value.KindMap,
}

var descriptors = [...]string{
	value.KindNil:         "V",
	value.KindBool:        "Z",
	value.KindInt:         "J",
	value.KindFloat:       "D",
	value.KindString:      "Ljava/lang/String;",
	value.KindStringArray: "[Ljava/lang/String;",
	value.KindIntArray:    "[I",
	value.KindFloatArray:  "[F",
	value.KindMap:         "Lorg/godotengine/godot/Dictionary;",
	value.KindInt64Array:  "[J",
}

// KindOf resolves a semantic type name.
func KindOf(name string) (value.Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

// Descriptor returns the native type descriptor of a kind.
func Descriptor(k value.Kind) (string, bool) {
	if int(k) >= len(descriptors) {
		return "", false
	}
	return descriptors[k], true
}
