package active

import "sync"

// Register tracks which single document is the current target of question
// answering. It is a process-wide, in-memory slot: last write wins on Set,
// and it does not survive a restart.
//
// ClearIf is a compare-and-clear so that deleting an old document can never
// clobber the pointer to a newer upload that raced it. All methods are safe
// for concurrent use.
type Register struct {
	mu  sync.Mutex
	id  int64
	set bool
}

func NewRegister() *Register {
	return &Register{}
}

// Set points the register at the given document id.
func (r *Register) Set(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.id = id
	r.set = true
}

// Get returns the active document id, or ok=false when nothing is active.
func (r *Register) Get() (int64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.id, r.set
}

// ClearIf empties the register only if it currently points at id.
func (r *Register) ClearIf(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.set && r.id == id {
		r.id = 0
		r.set = false
	}
}
