package native

import "github.com/tetratelabs/wazero/api"

// Slot is one native argument or result cell.
type Slot uint64

// Ref is a transient reference to a foreign object. The zero Ref is null.
type Ref uint32

func BoolSlot(b bool) Slot {
	if b {
		return Slot(api.EncodeI32(1))
	}
	return Slot(api.EncodeI32(0))
}

func IntSlot(i int64) Slot { return Slot(api.EncodeI64(i)) }

func FloatSlot(f float64) Slot { return Slot(api.EncodeF64(f)) }

func RefSlot(r Ref) Slot { return Slot(api.EncodeU32(uint32(r))) }

func (s Slot) Bool() bool { return api.DecodeI32(uint64(s)) != 0 }

func (s Slot) Int() int64 { return int64(s) }

func (s Slot) Float() float64 { return api.DecodeF64(uint64(s)) }

func (s Slot) Ref() Ref { return Ref(api.DecodeU32(uint64(s))) }
