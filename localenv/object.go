package localenv

import (
	"fmt"

	"github.com/wippyai/hostbridge/native"
)

// MethodFunc implements one method of an Object. Reference arguments arrive
// as RefSlots readable through env.Arg; reference results are created with
// env.Return.
type MethodFunc func(env *Env, args []native.Slot) (native.Slot, error)

// Method is the MethodID handed out by Object.MethodID.
type Method struct {
	owner *Object
	fn    MethodFunc
	name  string
}

func (m *Method) Name() string { return m.name }

// Object is a bridge instance made of Go method stubs.
type Object struct {
	methods map[string]*Method
	name    string
}

func NewObject(name string) *Object {
	return &Object{
		name:    name,
		methods: make(map[string]*Method),
	}
}

func (o *Object) Name() string { return o.name }

// Define adds or replaces a method.
func (o *Object) Define(name string, fn MethodFunc) *Object {
	o.methods[name] = &Method{owner: o, fn: fn, name: name}
	return o
}

// MethodID resolves a method by name.
func (o *Object) MethodID(name string) (native.MethodID, error) {
	m, ok := o.methods[name]
	if !ok {
		return nil, fmt.Errorf("%s has no method %q", o.name, name)
	}
	return m, nil
}
