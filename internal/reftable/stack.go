package reftable

import (
	"errors"
	"fmt"
)

var (
	ErrNoFrame    = errors.New("no reference frame")
	ErrFrameFull  = errors.New("reference frame full")
	ErrFrameDepth = errors.New("reference frame depth exceeded")
	ErrNotOwned   = errors.New("handle not owned by any open frame")
)

// Stack is a stack of bounded frames over a Table. Every handle created
// through the stack belongs to the top frame at creation time.
type Stack struct {
	table    *Table
	frames   []frame
	maxDepth int
}

type frame struct {
	owned    map[Handle]struct{}
	capacity int
}

// NewStack creates a stack over table allowing at most maxDepth open frames.
func NewStack(table *Table, maxDepth int) *Stack {
	return &Stack{table: table, maxDepth: maxDepth}
}

// Table returns the underlying table.
func (s *Stack) Table() *Table {
	return s.table
}

// Push opens a frame that can own at most capacity handles.
func (s *Stack) Push(capacity int) error {
	if capacity <= 0 {
		return fmt.Errorf("invalid frame capacity %d", capacity)
	}
	if len(s.frames) >= s.maxDepth {
		return fmt.Errorf("%w: %d open", ErrFrameDepth, len(s.frames))
	}
	s.frames = append(s.frames, frame{
		owned:    make(map[Handle]struct{}, capacity),
		capacity: capacity,
	})
	return nil
}

// Pop closes the top frame and reclaims the handles it still owns. It
// returns the number reclaimed.
func (s *Stack) Pop() int {
	n := len(s.frames)
	if n == 0 {
		return 0
	}
	top := s.frames[n-1]
	s.frames = s.frames[:n-1]
	for h := range top.owned {
		s.table.remove(h, EventReclaimed)
	}
	return len(top.owned)
}

// Depth returns the number of open frames.
func (s *Stack) Depth() int {
	return len(s.frames)
}

// Acquire stores value in the table and assigns the handle to the top frame.
func (s *Stack) Acquire(value any) (Handle, error) {
	n := len(s.frames)
	if n == 0 {
		return 0, ErrNoFrame
	}
	top := &s.frames[n-1]
	if len(top.owned) >= top.capacity {
		return 0, fmt.Errorf("%w: capacity %d", ErrFrameFull, top.capacity)
	}
	h, err := s.table.Insert(value)
	if err != nil {
		return 0, err
	}
	top.owned[h] = struct{}{}
	return h, nil
}

// Release drops a handle owned by any open frame.
func (s *Stack) Release(h Handle) error {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if _, ok := s.frames[i].owned[h]; ok {
			delete(s.frames[i].owned, h)
			s.table.Remove(h)
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrNotOwned, h)
}

// Get retrieves the value behind a handle.
func (s *Stack) Get(h Handle) (any, bool) {
	return s.table.Get(h)
}
