package signature

import (
	"regexp"
	"strings"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/hostbridge/errors"
	"github.com/wippyai/hostbridge/value"
)

// Declaration is one method declared in WIT text.
type Declaration struct {
	Name       string
	ParamNames []string
	Params     []value.Kind
	Return     value.Kind
}

// Signature returns the method descriptor of d.
func (d Declaration) Signature() (string, error) {
	return MethodSignature(d.Params, d.Return)
}

// KindOfWIT maps a WIT type onto a value kind. Integers of any width map to
// Int, floats to Float, and lists of string, s32, f32 and s64 to the array
// kinds.
func KindOfWIT(t wit.Type) (value.Kind, error) {
	switch t := t.(type) {
	case wit.Bool:
		return value.KindBool, nil
	case wit.S8, wit.S16, wit.S32, wit.S64, wit.U8, wit.U16, wit.U32, wit.U64:
		return value.KindInt, nil
	case wit.F32, wit.F64:
		return value.KindFloat, nil
	case wit.String:
		return value.KindString, nil
	case *wit.TypeDef:
		if l, ok := t.Kind.(*wit.List); ok {
			switch l.Type.(type) {
			case wit.String:
				return value.KindStringArray, nil
			case wit.S32:
				return value.KindIntArray, nil
			case wit.F32:
				return value.KindFloatArray, nil
			case wit.S64:
				return value.KindInt64Array, nil
			}
		}
	}
	return 0, errors.New(errors.PhaseParse, errors.KindUnsupportedKind).
		Detail("no value kind for WIT type %T", t).
		Build()
}

var funcPattern = regexp.MustCompile(`(?:export\s+)?([a-zA-Z_][a-zA-Z0-9_-]*)\s*:\s*func\s*\(([^)]*)\)(?:\s*->\s*([^;]+))?`)

// ParseWIT extracts method declarations of the form
// "name: func(a: s64, b: string) -> bool;" from WIT text. Only a single
// unnamed result is supported. The type name "dictionary" declares a Map.
func ParseWIT(text string) ([]Declaration, error) {
	var decls []Declaration

	for _, match := range funcPattern.FindAllStringSubmatch(text, -1) {
		decl := Declaration{Name: match[1], Return: value.KindNil}

		if params := strings.TrimSpace(match[2]); params != "" {
			for _, p := range strings.Split(params, ",") {
				p = strings.TrimSpace(p)
				name, typ, found := strings.Cut(p, ":")
				if !found {
					return nil, errors.InvalidInput(errors.PhaseParse, "parameter without type in "+decl.Name)
				}
				k, err := parseKind(typ)
				if err != nil {
					return nil, errors.WithMethod(err, decl.Name)
				}
				decl.ParamNames = append(decl.ParamNames, strings.TrimSpace(name))
				decl.Params = append(decl.Params, k)
			}
		}

		if result := strings.TrimSpace(match[3]); result != "" && result != "()" {
			if strings.HasPrefix(result, "(") {
				return nil, errors.New(errors.PhaseParse, errors.KindInvalidInput).
					Method(decl.Name).
					Detail("multiple or named results are not supported").
					Build()
			}
			k, err := parseKind(result)
			if err != nil {
				return nil, errors.WithMethod(err, decl.Name)
			}
			decl.Return = k
		}

		decls = append(decls, decl)
	}

	if len(decls) == 0 {
		return nil, errors.InvalidInput(errors.PhaseParse, "no functions found in WIT text")
	}
	return decls, nil
}

func parseKind(s string) (value.Kind, error) {
	s = strings.TrimSpace(s)
	if s == "dictionary" {
		return value.KindMap, nil
	}
	t, err := parseType(s)
	if err != nil {
		return 0, errors.Wrap(errors.PhaseParse, errors.KindInvalidInput, err, "parse type "+s)
	}
	return KindOfWIT(t)
}

// parseType parses primitives with wit.ParseType and builds list types
// around them.
func parseType(s string) (wit.Type, error) {
	if inner, ok := strings.CutPrefix(s, "list<"); ok && strings.HasSuffix(inner, ">") {
		elem, err := parseType(strings.TrimSpace(strings.TrimSuffix(inner, ">")))
		if err != nil {
			return nil, err
		}
		return &wit.TypeDef{Kind: &wit.List{Type: elem}}, nil
	}
	return wit.ParseType(s)
}
