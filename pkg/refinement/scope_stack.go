package refinement

// Frame is one activation of an OverrideSet.
type Frame struct {
	Set    *OverrideSet
	Kind   ScopeKind
	Region string
}

type stackEntry struct {
	frame   Frame
	barrier bool
}

// ScopeStack holds the frames of a single execution context. It is not
// safe for concurrent use; each goroutine owns its own stack.
//
// Barriers separate method bodies from their callers: TopDown never looks
// below the innermost barrier.
type ScopeStack struct {
	entries []stackEntry
}

// NewScopeStack returns an empty stack.
func NewScopeStack() *ScopeStack {
	return &ScopeStack{}
}

// Push adds frame on top.
func (s *ScopeStack) Push(frame Frame) {
	s.entries = append(s.entries, stackEntry{frame: frame})
}

// Pop removes the top frame. Popping an empty stack, or popping through a
// barrier, fails with *StackUnderflowError.
func (s *ScopeStack) Pop() (Frame, error) {
	n := len(s.entries)
	if n == 0 {
		return Frame{}, &StackUnderflowError{Op: "pop on empty stack"}
	}

	top := s.entries[n-1]
	if top.barrier {
		return Frame{}, &StackUnderflowError{Op: "pop crossed a method barrier"}
	}

	s.entries[n-1] = stackEntry{}
	s.entries = s.entries[:n-1]

	return top.frame, nil
}

// PushBarrier hides every frame currently on the stack.
func (s *ScopeStack) PushBarrier() {
	s.entries = append(s.entries, stackEntry{barrier: true})
}

// PopBarrier removes the top entry, which must be a barrier.
func (s *ScopeStack) PopBarrier() error {
	n := len(s.entries)
	if n == 0 {
		return &StackUnderflowError{Op: "pop barrier on empty stack"}
	}

	if !s.entries[n-1].barrier {
		return &StackUnderflowError{Op: "pop barrier found a frame"}
	}

	s.entries = s.entries[:n-1]

	return nil
}

// TopDown returns the visible frames, most recent first.
func (s *ScopeStack) TopDown() []Frame {
	frames := make([]Frame, 0, len(s.entries))

	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].barrier {
			break
		}

		frames = append(frames, s.entries[i].frame)
	}

	return frames
}

// Len returns the number of frames, visible or not.
func (s *ScopeStack) Len() int {
	n := 0

	for _, e := range s.entries {
		if !e.barrier {
			n++
		}
	}

	return n
}

// Depth returns the number of entries including barriers.
func (s *ScopeStack) Depth() int {
	return len(s.entries)
}
