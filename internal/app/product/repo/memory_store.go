package repo

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	contracts "github.com/gizigo/product-console/internal/app/product/contracts"
	"github.com/gizigo/product-console/internal/app/product/domain"
	"github.com/gizigo/product-console/internal/models/m_product"
	"github.com/gizigo/product-console/internal/pkg/clock"
)

// MemoryStore is a process-local product collection with live snapshot push.
// Server timestamps come from its clock. It backs STORE_BACKEND=memory and tests.
type MemoryStore struct {
	mu       sync.Mutex
	clock    clock.Clock
	docs     map[string]*memoryDoc
	seq      int64
	subs     map[*memorySubscription]struct{}
	failNext map[domain.Operation]error
}

type memoryDoc struct {
	seq int64
	doc m_product.Document
}

var _ contracts.Store = (*MemoryStore)(nil)

func NewMemoryStore(clk clock.Clock) *MemoryStore {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &MemoryStore{
		clock:    clk,
		docs:     make(map[string]*memoryDoc),
		subs:     make(map[*memorySubscription]struct{}),
		failNext: make(map[domain.Operation]error),
	}
}

// FailNext makes the next call for op return err. OpRead covers Subscribe and Get.
func (s *MemoryStore) FailNext(op domain.Operation, err error) {
	s.mu.Lock()
	s.failNext[op] = err
	s.mu.Unlock()
}

// BreakSubscriptions ends every live subscription with err, like a listener
// revoked by the server.
func (s *MemoryStore) BreakSubscriptions(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for sub := range s.subs {
		offer(sub.ch, contracts.Snapshot{Err: err})
		s.detachLocked(sub)
	}
}

// SubscriberCount returns the number of live subscriptions.
func (s *MemoryStore) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Close ends every live subscription. The documents stay readable.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for sub := range s.subs {
		s.detachLocked(sub)
	}
	return nil
}

// Put stores doc under id as-is, bypassing field translation. Useful to seed
// documents written by other tools, e.g. with a price range.
func (s *MemoryStore) Put(id string, doc m_product.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.docs[id] = &memoryDoc{seq: s.seq, doc: doc}
	s.broadcastLocked()
}

func (s *MemoryStore) takeFailure(op domain.Operation) error {
	err := s.failNext[op]
	delete(s.failNext, op)
	return err
}

func (s *MemoryStore) Subscribe(ctx context.Context, q contracts.Query) (contracts.Subscription, error) {
	if _, err := orderColumn(q.OrderBy); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(domain.OpRead); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	sub := &memorySubscription{
		store:  s,
		query:  q,
		ch:     make(chan contracts.Snapshot, 1),
		cancel: cancel,
	}
	s.subs[sub] = struct{}{}
	offer(sub.ch, contracts.Snapshot{Products: s.resultLocked(q)})

	go func() {
		<-ctx.Done()
		_ = sub.Close()
	}()
	return sub, nil
}

func (s *MemoryStore) Insert(ctx context.Context, fields contracts.Fields) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(domain.OpCreate); err != nil {
		return "", err
	}

	var doc m_product.Document
	if err := doc.Apply(fields, s.clock.Now()); err != nil {
		return "", status.Error(codes.InvalidArgument, err.Error())
	}
	id := uuid.New().String()
	s.seq++
	s.docs[id] = &memoryDoc{seq: s.seq, doc: doc}
	s.broadcastLocked()
	return id, nil
}

func (s *MemoryStore) Patch(ctx context.Context, id string, fields contracts.Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(domain.OpUpdate); err != nil {
		return err
	}

	cur, ok := s.docs[id]
	if !ok {
		return status.Errorf(codes.NotFound, "no document to update: %s", id)
	}
	next := cur.doc
	if err := next.Apply(fields, s.clock.Now()); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	cur.doc = next
	s.broadcastLocked()
	return nil
}

// Remove deletes id. Removing a missing document succeeds, as in Firestore.
func (s *MemoryStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(domain.OpDelete); err != nil {
		return err
	}

	if _, ok := s.docs[id]; !ok {
		return nil
	}
	delete(s.docs, id)
	s.broadcastLocked()
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(domain.OpRead); err != nil {
		return nil, err
	}

	cur, ok := s.docs[id]
	if !ok {
		return nil, status.Errorf(codes.NotFound, "no document: %s", id)
	}
	p := cur.doc.ToDomain(id)
	return &p, nil
}

func (s *MemoryStore) broadcastLocked() {
	for sub := range s.subs {
		offer(sub.ch, contracts.Snapshot{Products: s.resultLocked(sub.query)})
	}
}

func (s *MemoryStore) resultLocked(q contracts.Query) []domain.Product {
	type row struct {
		id string
		*memoryDoc
	}
	rows := make([]row, 0, len(s.docs))
	for id, d := range s.docs {
		rows = append(rows, row{id: id, memoryDoc: d})
	}

	less := func(a, b row) bool {
		if q.OrderBy == m_product.FieldName && a.doc.Name != b.doc.Name {
			return a.doc.Name < b.doc.Name
		}
		if q.OrderBy == m_product.FieldCreatedAt {
			at, bt := a.doc.CreatedAt, b.doc.CreatedAt
			switch {
			case at != nil && bt != nil && !at.Equal(*bt):
				return at.Before(*bt)
			case at == nil && bt != nil:
				return true
			case at != nil && bt == nil:
				return false
			}
		}
		return a.seq < b.seq
	}
	sort.Slice(rows, func(i, j int) bool {
		if q.Descending {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})

	out := make([]domain.Product, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.doc.ToDomain(r.id))
	}
	return out
}

func (s *MemoryStore) detachLocked(sub *memorySubscription) {
	if sub.closed {
		return
	}
	sub.closed = true
	delete(s.subs, sub)
	close(sub.ch)
	sub.cancel()
}

type memorySubscription struct {
	store  *MemoryStore
	query  contracts.Query
	ch     chan contracts.Snapshot
	cancel context.CancelFunc
	closed bool // guarded by store.mu
}

func (m *memorySubscription) Snapshots() <-chan contracts.Snapshot { return m.ch }

func (m *memorySubscription) Close() error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.detachLocked(m)
	return nil
}
