package transfer

import "sync"

// inflight tracks the players with a mutation awaiting the server
type inflight struct {
	mu      sync.Mutex
	pending map[string]string
}

func newInflight() *inflight {
	return &inflight{pending: make(map[string]string)}
}

// acquire claims playerID for op. The returned release must be called once
// the mutation settles.
func (f *inflight) acquire(playerID, op string) (func(), bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, busy := f.pending[playerID]; busy {
		return nil, false
	}
	f.pending[playerID] = op

	return func() {
		f.mu.Lock()
		delete(f.pending, playerID)
		f.mu.Unlock()
	}, true
}

func (f *inflight) op(playerID string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	op, ok := f.pending[playerID]
	return op, ok
}
