package signature

import (
	"strings"

	"github.com/wippyai/hostbridge/errors"
	"github.com/wippyai/hostbridge/value"
)

// MethodSignature builds a method descriptor such as "(JLjava/lang/String;)Z".
// Nil is only valid as a return kind.
func MethodSignature(params []value.Kind, ret value.Kind) (string, error) {
	var b strings.Builder
	b.WriteByte('(')
	for i, p := range params {
		if p == value.KindNil {
			return "", errors.New(errors.PhaseRegister, errors.KindInvalidInput).
				Argument(i).
				Detail("void is not a parameter type").
				Build()
		}
		d, ok := Descriptor(p)
		if !ok {
			return "", errors.UnsupportedKind(errors.PhaseRegister, p)
		}
		b.WriteString(d)
	}
	b.WriteByte(')')

	d, ok := Descriptor(ret)
	if !ok {
		return "", errors.UnsupportedKind(errors.PhaseRegister, ret)
	}
	b.WriteString(d)
	return b.String(), nil
}

// ParseMethodSignature is the inverse of MethodSignature. It also accepts
// the narrow descriptors I and F for Int and Float.
func ParseMethodSignature(sig string) ([]value.Kind, value.Kind, error) {
	if !strings.HasPrefix(sig, "(") {
		return nil, 0, invalidSignature(sig, "missing '('")
	}
	end := strings.IndexByte(sig, ')')
	if end < 0 {
		return nil, 0, invalidSignature(sig, "missing ')'")
	}

	var params []value.Kind
	rest := sig[1:end]
	for rest != "" {
		k, n, err := parseDescriptor(rest)
		if err != nil {
			return nil, 0, invalidSignature(sig, err.Error())
		}
		if k == value.KindNil {
			return nil, 0, invalidSignature(sig, "void parameter")
		}
		params = append(params, k)
		rest = rest[n:]
	}

	ret, n, err := parseDescriptor(sig[end+1:])
	if err != nil {
		return nil, 0, invalidSignature(sig, err.Error())
	}
	if end+1+n != len(sig) {
		return nil, 0, invalidSignature(sig, "trailing characters after return type")
	}
	return params, ret, nil
}

// parseDescriptor reads one descriptor from the front of s and returns its
// kind and length.
func parseDescriptor(s string) (value.Kind, int, error) {
	if s == "" {
		return 0, 0, errors.InvalidInput(errors.PhaseParse, "empty descriptor")
	}
	switch s[0] {
	case 'V':
		return value.KindNil, 1, nil
	case 'Z':
		return value.KindBool, 1, nil
	case 'I', 'J':
		return value.KindInt, 1, nil
	case 'F', 'D':
		return value.KindFloat, 1, nil
	case 'L':
		end := strings.IndexByte(s, ';')
		if end < 0 {
			return 0, 0, errors.InvalidInput(errors.PhaseParse, "unterminated class descriptor")
		}
		class := strings.ReplaceAll(s[1:end], "/", ".")
		switch class {
		case "java.lang.String":
			return value.KindString, end + 1, nil
		case "org.godotengine.godot.Dictionary":
			return value.KindMap, end + 1, nil
		}
		return 0, 0, errors.InvalidInput(errors.PhaseParse, "unsupported class "+class)
	case '[':
		switch {
		case strings.HasPrefix(s, "[I"):
			return value.KindIntArray, 2, nil
		case strings.HasPrefix(s, "[F"):
			return value.KindFloatArray, 2, nil
		case strings.HasPrefix(s, "[J"):
			return value.KindInt64Array, 2, nil
		case strings.HasPrefix(s, "[Ljava/lang/String;"):
			return value.KindStringArray, len("[Ljava/lang/String;"), nil
		}
		return 0, 0, errors.InvalidInput(errors.PhaseParse, "unsupported array descriptor")
	}
	return 0, 0, errors.InvalidInput(errors.PhaseParse, "unknown descriptor "+s[:1])
}

func invalidSignature(sig, detail string) error {
	return errors.New(errors.PhaseParse, errors.KindInvalidInput).
		Value(sig).
		Detail("invalid method signature %q: %s", sig, detail).
		Build()
}
