package reftable

import "errors"

var ErrClosed = errors.New("reference table closed")

// Handle is an index into a Table. Handle 0 is reserved and always invalid.
type Handle uint32

// EventType identifies a reference lifecycle notification.
type EventType uint8

const (
	EventAcquired EventType = iota
	EventReleased
	// EventReclaimed is emitted for a handle that was still live when its
	// frame was popped.
	EventReclaimed
)

// Event represents a reference lifecycle event.
type Event struct {
	Value  any
	Handle Handle
	Type   EventType
}

// Observer receives notifications about reference lifecycle events.
type Observer interface {
	OnRefEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) OnRefEvent(e Event) { f(e) }

// Table stores values behind handles.
type Table struct {
	entries   []entry
	freeList  []Handle
	observers []Observer
	live      int
	closed    bool
}

type entry struct {
	value any
	valid bool
}

// New creates an empty table.
func New() *Table {
	return &Table{
		entries:  make([]entry, 0, 64),
		freeList: make([]Handle, 0, 16),
	}
}

// Insert stores a value and returns its handle.
func (t *Table) Insert(value any) (Handle, error) {
	if t.closed {
		return 0, ErrClosed
	}

	e := entry{value: value, valid: true}

	var handle Handle
	if n := len(t.freeList); n > 0 {
		handle = t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
		t.entries[handle-1] = e
	} else {
		t.entries = append(t.entries, e)
		handle = Handle(len(t.entries))
	}
	t.live++

	t.notify(Event{Type: EventAcquired, Handle: handle, Value: value})
	return handle, nil
}

// Get retrieves a value by handle.
func (t *Table) Get(handle Handle) (any, bool) {
	if handle == 0 || int(handle) > len(t.entries) {
		return nil, false
	}
	e := t.entries[handle-1]
	if !e.valid {
		return nil, false
	}
	return e.value, true
}

// Remove drops a handle and returns (value, true) if it was live.
func (t *Table) Remove(handle Handle) (any, bool) {
	return t.remove(handle, EventReleased)
}

func (t *Table) remove(handle Handle, ev EventType) (any, bool) {
	if handle == 0 || int(handle) > len(t.entries) {
		return nil, false
	}
	e := &t.entries[handle-1]
	if !e.valid {
		return nil, false
	}

	value := e.value
	e.valid = false
	e.value = nil
	t.freeList = append(t.freeList, handle)
	t.live--

	t.notify(Event{Type: ev, Handle: handle, Value: value})
	return value, true
}

// Len returns the number of live handles.
func (t *Table) Len() int {
	return t.live
}

// Each iterates over all live handles.
func (t *Table) Each(fn func(Handle, any) bool) {
	for i, e := range t.entries {
		if e.valid {
			if !fn(Handle(i+1), e.value) {
				break
			}
		}
	}
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.observers = append(t.observers, o)
}

// Close drops every live handle and rejects further inserts.
func (t *Table) Close() error {
	if t.closed {
		return nil
	}
	for i := range t.entries {
		if t.entries[i].valid {
			t.remove(Handle(i+1), EventReclaimed)
		}
	}
	t.closed = true
	t.entries = nil
	t.freeList = nil
	return nil
}

func (t *Table) notify(e Event) {
	for _, o := range t.observers {
		o.OnRefEvent(e)
	}
}
