package receipts

import "sync"

// Ledger is the in-memory working set of a receipts view: the reconciled
// records plus the keys with a cancellation in flight. The pending set is
// replaced copy-on-write under the mutex, so snapshots handed out by
// Pending stay stable while later cancellations race. Cancelling the same
// key twice before the first resolves is not deduplicated.
type Ledger struct {
	mu       sync.Mutex
	receipts []Receipt
	pending  map[string]struct{}
}

// NewLedger wraps a reconciled receipt list in a working set.
func NewLedger(receipts []Receipt) *Ledger {
	return &Ledger{
		receipts: receipts,
		pending:  map[string]struct{}{},
	}
}

// Receipts returns the current working collection.
func (l *Ledger) Receipts() []Receipt {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.receipts
}

// Find returns the receipt with the given type and id, if present.
func (l *Ledger) Find(receiptType, id string) (Receipt, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := receiptType + ":" + id
	for _, r := range l.receipts {
		if r.Key() == key {
			return r, true
		}
	}
	return Receipt{}, false
}

// Pending returns a snapshot of the keys with a cancellation in flight.
func (l *Ledger) Pending() map[string]struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending
}

// IsPending reports whether the key has a cancellation in flight.
func (l *Ledger) IsPending(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.pending[key]
	return ok
}

func (l *Ledger) markPending(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	next := make(map[string]struct{}, len(l.pending)+1)
	for k := range l.pending {
		next[k] = struct{}{}
	}
	next[key] = struct{}{}
	l.pending = next
}

func (l *Ledger) clearPending(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending = without(l.pending, key)
}

// settle removes the record from the working collection and clears its
// in-flight mark. Removal is optimistic: it happens as soon as the server
// acknowledges, regardless of when the deletion is fully processed.
func (l *Ledger) settle(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := make([]Receipt, 0, len(l.receipts))
	for _, r := range l.receipts {
		if r.Key() != key {
			kept = append(kept, r)
		}
	}
	l.receipts = kept
	l.pending = without(l.pending, key)
}

func without(set map[string]struct{}, key string) map[string]struct{} {
	next := make(map[string]struct{}, len(set))
	for k := range set {
		if k != key {
			next[k] = struct{}{}
		}
	}
	return next
}
