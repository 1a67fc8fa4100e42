package refinement

import (
	"slices"
	"sync"
	"sync/atomic"
)

type stickySnapshot map[string][]*OverrideSet

// stickyRegistry maps a type name to the sets activated while that type
// was being defined. Writers serialize on mu and publish a fresh snapshot;
// readers never block.
type stickyRegistry struct {
	mu       sync.Mutex
	snapshot atomic.Pointer[stickySnapshot]
}

func newStickyRegistry() *stickyRegistry {
	r := &stickyRegistry{}
	empty := stickySnapshot{}
	r.snapshot.Store(&empty)

	return r
}

// attach appends set to owner's attachments. It reports false when set
// was already attached.
func (r *stickyRegistry) attach(owner string, set *OverrideSet) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := *r.snapshot.Load()
	if slices.Contains(current[owner], set) {
		return false
	}

	next := make(stickySnapshot, len(current)+1)
	for name, sets := range current {
		next[name] = sets
	}

	next[owner] = append(slices.Clone(current[owner]), set)
	r.snapshot.Store(&next)

	return true
}

// attached returns owner's sets, most recently attached first.
func (r *stickyRegistry) attached(owner string) []*OverrideSet {
	sets := (*r.snapshot.Load())[owner]
	if len(sets) == 0 {
		return nil
	}

	out := slices.Clone(sets)
	slices.Reverse(out)

	return out
}
