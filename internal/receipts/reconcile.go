package receipts

import "campus-borrow/internal/models"

// Identity is the set of strings known to identify the signed-in user:
// the cached profile's id, email and name, the cached login email, and
// the cached borrower id. All values are compared by exact string
// equality after coercion, so a numeric 42 and a string "42" are the
// same candidate.
type Identity map[string]struct{}

// NewIdentity builds an identity set from the given values, skipping
// empties.
func NewIdentity(values ...string) Identity {
	id := make(Identity, len(values))
	for _, v := range values {
		if v != "" {
			id[v] = struct{}{}
		}
	}
	return id
}

// Matches reports whether any of the values belongs to the identity set.
func (id Identity) Matches(values []string) bool {
	for _, v := range values {
		if _, ok := id[v]; ok {
			return true
		}
	}
	return false
}

type owned interface {
	OwnerValues() []string
}

// filterOwned keeps the records whose borrower-identifying fields
// intersect the identity set, preserving backend order.
//
// When the identity set is empty the full collection passes through:
// showing possibly-foreign records beats showing nothing when identity
// cannot be established at all. Flagged for product review — an
// authenticated but identity-less user sees every receipt.
func filterOwned[T owned](id Identity, records []T) []T {
	if len(id) == 0 {
		return records
	}
	var out []T
	for _, r := range records {
		if id.Matches(r.OwnerValues()) {
			out = append(out, r)
		}
	}
	return out
}

// FilterRequests keeps the item requests belonging to the identity.
func FilterRequests(id Identity, reqs []models.BorrowRequest) []models.BorrowRequest {
	return filterOwned(id, reqs)
}

// FilterRoomRequests keeps the room reservations belonging to the identity.
func FilterRoomRequests(id Identity, reqs []models.RoomRequest) []models.RoomRequest {
	return filterOwned(id, reqs)
}
