package repo

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	contracts "github.com/gizigo/product-console/internal/app/product/contracts"
	"github.com/gizigo/product-console/internal/app/product/domain"
	"github.com/gizigo/product-console/internal/models/m_product"
	commitplan "github.com/gizigo/product-console/internal/pkg/committer"
)

// SpannerStore keeps products in a Cloud Spanner table. Writes are single
// mutation plans applied by the committer. Spanner has no change listener,
// so subscriptions re-run the query on an interval and push a snapshot only
// when the result set changed.
type SpannerStore struct {
	client    *spanner.Client
	committer contracts.Committer
	interval  time.Duration
	log       *zap.Logger
}

var _ contracts.Store = (*SpannerStore)(nil)

func NewSpannerStore(client *spanner.Client, committer contracts.Committer, interval time.Duration, log *zap.Logger) *SpannerStore {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &SpannerStore{client: client, committer: committer, interval: interval, log: log}
}

// OpenSpanner connects to database (projects/<p>/instances/<i>/databases/<d>).
func OpenSpanner(ctx context.Context, database string, interval time.Duration, log *zap.Logger) (*SpannerStore, error) {
	client, err := spanner.NewClient(ctx, database)
	if err != nil {
		return nil, fmt.Errorf("spanner client: %w", err)
	}
	return NewSpannerStore(client, commitplan.NewAdapter(client), interval, log), nil
}

func (s *SpannerStore) Close() error {
	s.client.Close()
	return nil
}

func (s *SpannerStore) Insert(ctx context.Context, fields contracts.Fields) (string, error) {
	id := uuid.New().String()
	m, err := m_product.InsertMutation(id, fields)
	if err != nil {
		return "", err
	}
	if err := s.committer.Apply(ctx, commitplan.NewPlan(m)); err != nil {
		return "", err
	}
	return id, nil
}

func (s *SpannerStore) Patch(ctx context.Context, id string, fields contracts.Fields) error {
	m, err := m_product.UpdateMutation(id, fields)
	if err != nil {
		return err
	}
	return s.committer.Apply(ctx, commitplan.NewPlan(m))
}

func (s *SpannerStore) Remove(ctx context.Context, id string) error {
	return s.committer.Apply(ctx, commitplan.NewPlan(m_product.DeleteMutation(id)))
}

func (s *SpannerStore) Get(ctx context.Context, id string) (*domain.Product, error) {
	row, err := s.client.Single().ReadRow(ctx, m_product.TableName, spanner.Key{id}, m_product.SelectColumns)
	if err != nil {
		return nil, err
	}
	rowID, doc, err := m_product.ScanRow(row)
	if err != nil {
		return nil, err
	}
	p := doc.ToDomain(rowID)
	return &p, nil
}

// Subscribe fails up front for unsupported orderings; query errors during
// polling end the subscription with an error snapshot.
func (s *SpannerStore) Subscribe(ctx context.Context, q contracts.Query) (contracts.Subscription, error) {
	stmt, err := listStatement(q)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	sub := &pollingSubscription{
		ch:     make(chan contracts.Snapshot, 1),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go s.poll(ctx, stmt, sub)
	return sub, nil
}

func listStatement(q contracts.Query) (spanner.Statement, error) {
	col, err := orderColumn(q.OrderBy)
	if err != nil {
		return spanner.Statement{}, err
	}
	dir := "ASC"
	if q.Descending {
		dir = "DESC"
	}
	return spanner.Statement{
		SQL: fmt.Sprintf("SELECT %s FROM %s ORDER BY %s %s, %s",
			strings.Join(m_product.SelectColumns, ", "), m_product.TableName, col, dir, m_product.ColProductID),
	}, nil
}

func (s *SpannerStore) poll(ctx context.Context, stmt spanner.Statement, sub *pollingSubscription) {
	defer close(sub.done)
	defer close(sub.ch)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var last []domain.Product
	first := true
	for {
		products, err := s.query(ctx, stmt)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			offer(sub.ch, contracts.Snapshot{Err: err})
			return
		}
		if first || !reflect.DeepEqual(last, products) {
			offer(sub.ch, contracts.Snapshot{Products: products})
			last, first = products, false
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *SpannerStore) query(ctx context.Context, stmt spanner.Statement) ([]domain.Product, error) {
	iter := s.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	products := make([]domain.Product, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return products, nil
		}
		if err != nil {
			return nil, err
		}
		id, doc, err := m_product.ScanRow(row)
		if err != nil {
			return nil, err
		}
		products = append(products, doc.ToDomain(id))
	}
}

type pollingSubscription struct {
	ch     chan contracts.Snapshot
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func (p *pollingSubscription) Snapshots() <-chan contracts.Snapshot { return p.ch }

func (p *pollingSubscription) Close() error {
	p.once.Do(p.cancel)
	<-p.done
	return nil
}
