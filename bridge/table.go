package bridge

import (
	"reflect"
	"sort"

	"github.com/wippyai/hostbridge/native"
	"github.com/wippyai/hostbridge/value"
)

// MethodDescriptor describes one registered method. It is never modified
// after registration.
type MethodDescriptor struct {
	Handle native.MethodID
	Params []value.Kind
	Return value.Kind
}

// Arity returns the only accepted argument count.
func (d *MethodDescriptor) Arity() int {
	return len(d.Params)
}

// MethodTable maps method names to descriptors and holds the bridge
// instance. Writes must happen before concurrent reads begin.
type MethodTable struct {
	methods     map[string]*MethodDescriptor
	instance    native.Instance
	hasInstance bool
}

func NewMethodTable() *MethodTable {
	return &MethodTable{
		methods: make(map[string]*MethodDescriptor),
	}
}

// Register adds or replaces a method. params is copied.
func (t *MethodTable) Register(name string, handle native.MethodID, params []value.Kind, ret value.Kind) {
	t.methods[name] = &MethodDescriptor{
		Handle: handle,
		Params: append([]value.Kind(nil), params...),
		Return: ret,
	}
}

func (t *MethodTable) Lookup(name string) (*MethodDescriptor, bool) {
	d, ok := t.methods[name]
	return d, ok
}

// SetInstance sets the bridge instance. A nil handle, including a typed nil
// pointer, clears it.
func (t *MethodTable) SetInstance(h native.Instance) {
	if isNil(h) {
		t.ClearInstance()
		return
	}
	t.instance = h
	t.hasInstance = true
}

func (t *MethodTable) ClearInstance() {
	t.instance = nil
	t.hasInstance = false
}

// Instance returns the bridge instance and whether one is set.
func (t *MethodTable) Instance() (native.Instance, bool) {
	return t.instance, t.hasInstance
}

// Names returns the registered method names in sorted order.
func (t *MethodTable) Names() []string {
	names := make([]string, 0, len(t.methods))
	for name := range t.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t *MethodTable) Len() int {
	return len(t.methods)
}

// Reset drops every method and the instance.
func (t *MethodTable) Reset() {
	t.methods = make(map[string]*MethodDescriptor)
	t.ClearInstance()
}

func isNil(h native.Instance) bool {
	if h == nil {
		return true
	}
	switch v := reflect.ValueOf(h); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return v.IsNil()
	}
	return false
}
