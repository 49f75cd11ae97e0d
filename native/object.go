package native

// Object is a value living on the host runtime side. Reference kinds are
// marshalled into one of the concrete types below.
type Object interface {
	// ClassName is the host runtime's name for the object's type.
	ClassName() string
}

type (
	String      string
	StringArray []string
	IntArray    []int32
	FloatArray  []float32
	LongArray   []int64
	Boolean     bool
	Long        int64
	Double      float64
)

// Dictionary is the host runtime's string-keyed map. Values may be nil.
type Dictionary struct {
	Keys   []string
	Values []Object
}

func (String) ClassName() string      { return "java.lang.String" }
func (StringArray) ClassName() string { return "[Ljava.lang.String;" }
func (IntArray) ClassName() string    { return "[I" }
func (FloatArray) ClassName() string  { return "[F" }
func (LongArray) ClassName() string   { return "[J" }
func (Boolean) ClassName() string     { return "java.lang.Boolean" }
func (Long) ClassName() string        { return "java.lang.Long" }
func (Double) ClassName() string      { return "java.lang.Double" }
func (*Dictionary) ClassName() string { return "org.godotengine.godot.Dictionary" }

// Len returns the number of entries.
func (d *Dictionary) Len() int { return len(d.Keys) }

// Put appends an entry, replacing an existing key.
func (d *Dictionary) Put(key string, v Object) {
	for i, k := range d.Keys {
		if k == key {
			d.Values[i] = v
			return
		}
	}
	d.Keys = append(d.Keys, key)
	d.Values = append(d.Values, v)
}

// Get returns the value stored under key.
func (d *Dictionary) Get(key string) (Object, bool) {
	for i, k := range d.Keys {
		if k == key {
			return d.Values[i], true
		}
	}
	return nil, false
}

// ClassNameOf returns obj's class name, or "null".
func ClassNameOf(obj Object) string {
	if obj == nil {
		return "null"
	}
	return obj.ClassName()
}
