package receipts

import (
	"context"
	"sync"

	"campus-borrow/internal/api"
	"campus-borrow/internal/models"
	"campus-borrow/internal/session"
)

// Receipt types, used as the discriminator on the unified list.
const (
	TypeItem = "item"
	TypeRoom = "room"
)

// Receipt is one row of the unified receipts view: a request of either
// kind with its display fields normalized.
type Receipt struct {
	Type    string
	ID      string
	Name    string
	Date    string
	TimeIn  string
	TimeOut string
}

// Key identifies a receipt across both collections; item and room ids
// come from independent sequences and may collide.
func (r Receipt) Key() string {
	return r.Type + ":" + r.ID
}

// Service fetches both request collections and reconciles them against
// the locally cached identity.
type Service struct {
	api   *api.Client
	store *session.Store
}

// NewService returns a reconciliation service over the given client and
// session cache.
func NewService(client *api.Client, store *session.Store) *Service {
	return &Service{api: client, store: store}
}

// Load fetches item and room requests concurrently, keeps the ones
// belonging to the cached identity, and returns them as a working set:
// item receipts first, then room receipts, backend order within each.
// Either fetch failing fails the whole load; partial results are never
// shown.
func (s *Service) Load(ctx context.Context) (*Ledger, error) {
	var (
		itemReqs []models.BorrowRequest
		roomReqs []models.RoomRequest
		itemErr  error
		roomErr  error
	)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		itemReqs, itemErr = s.api.Requests(ctx)
	}()
	go func() {
		defer wg.Done()
		roomReqs, roomErr = s.api.RoomRequests(ctx)
	}()
	wg.Wait()

	if itemErr != nil {
		return nil, itemErr
	}
	if roomErr != nil {
		return nil, roomErr
	}

	id := s.identity()

	var receipts []Receipt
	for _, r := range FilterRequests(id, itemReqs) {
		receipts = append(receipts, Receipt{
			Type:    TypeItem,
			ID:      string(r.ID),
			Name:    string(r.Name),
			Date:    FormatDate(r.RawDate()),
			TimeIn:  FormatTime(r.RawTimeIn()),
			TimeOut: FormatTime(r.RawTimeOut()),
		})
	}
	for _, r := range FilterRoomRequests(id, roomReqs) {
		receipts = append(receipts, Receipt{
			Type:    TypeRoom,
			ID:      string(r.ID),
			Name:    string(r.Name),
			Date:    FormatDate(r.RawDate()),
			TimeIn:  FormatTime(r.RawTimeIn()),
			TimeOut: FormatTime(r.RawTimeOut()),
		})
	}

	return NewLedger(receipts), nil
}

// identity collects every identifying attribute recoverable from the
// cache. DisplayEmail is deliberately not used here; its placeholder
// default must never match anything.
func (s *Service) identity() Identity {
	var values []string
	if u, ok := s.store.User(); ok {
		values = append(values, string(u.ID), u.Email, u.Name)
	}
	if email, ok := s.store.Email(); ok {
		values = append(values, email)
	}
	if borrowerID, ok := s.store.BorrowerID(); ok {
		values = append(values, borrowerID)
	}
	return NewIdentity(values...)
}

// Cancel runs the two-step cancellation sequence on a ledger entry: the
// key is marked in flight before the call, the record leaves the working
// set only on success, and on failure only the in-flight mark is cleared
// so the record stays visible.
func (s *Service) Cancel(ctx context.Context, l *Ledger, r Receipt) error {
	l.markPending(r.Key())

	var err error
	switch r.Type {
	case TypeItem:
		err = s.api.CancelRequest(ctx, r.ID)
	case TypeRoom:
		err = s.api.CancelRoomRequest(ctx, r.ID)
	default:
		err = errUnknownType(r.Type)
	}

	if err != nil {
		l.clearPending(r.Key())
		return err
	}
	l.settle(r.Key())
	return nil
}

type errUnknownType string

func (e errUnknownType) Error() string {
	return "unknown receipt type " + string(e)
}
