package repo

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	contracts "github.com/gizigo/product-console/internal/app/product/contracts"
	"github.com/gizigo/product-console/internal/app/product/domain"
	"github.com/gizigo/product-console/internal/models/m_product"
)

// FirestoreStore is the product collection in Cloud Firestore. Subscriptions
// use Firestore's native snapshot listener.
type FirestoreStore struct {
	client     *firestore.Client
	collection string
	log        *zap.Logger
}

var _ contracts.Store = (*FirestoreStore)(nil)

func NewFirestoreStore(client *firestore.Client, collection string, log *zap.Logger) *FirestoreStore {
	if collection == "" {
		collection = m_product.CollectionName
	}
	return &FirestoreStore{client: client, collection: collection, log: log}
}

// OpenFirestore initializes a Firebase app and its Firestore client.
// credentialsPath may be empty to use application default credentials.
func OpenFirestore(ctx context.Context, projectID, credentialsPath, collection string, log *zap.Logger) (*FirestoreStore, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return NewFirestoreStore(client, collection, log), nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func (s *FirestoreStore) coll() *firestore.CollectionRef {
	return s.client.Collection(s.collection)
}

func (s *FirestoreStore) Subscribe(ctx context.Context, q contracts.Query) (contracts.Subscription, error) {
	dir := firestore.Asc
	if q.Descending {
		dir = firestore.Desc
	}

	ctx, cancel := context.WithCancel(ctx)
	sub := &firestoreSubscription{
		ch:     make(chan contracts.Snapshot, 1),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	it := s.coll().OrderBy(q.OrderBy, dir).Snapshots(ctx)
	go s.listen(ctx, it, sub)
	return sub, nil
}

func (s *FirestoreStore) listen(ctx context.Context, it *firestore.QuerySnapshotIterator, sub *firestoreSubscription) {
	defer close(sub.done)
	defer close(sub.ch)
	defer it.Stop()

	for {
		snap, err := it.Next()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, iterator.Done) {
				return
			}
			offer(sub.ch, contracts.Snapshot{Err: err})
			return
		}

		docs, err := snap.Documents.GetAll()
		if err != nil {
			offer(sub.ch, contracts.Snapshot{Err: err})
			return
		}
		products := make([]domain.Product, 0, len(docs))
		for _, d := range docs {
			var doc m_product.Document
			if err := d.DataTo(&doc); err != nil {
				s.log.Warn("skipping undecodable product document",
					zap.String("id", d.Ref.ID), zap.Error(err))
				continue
			}
			products = append(products, doc.ToDomain(d.Ref.ID))
		}
		offer(sub.ch, contracts.Snapshot{Products: products})
	}
}

func (s *FirestoreStore) Insert(ctx context.Context, fields contracts.Fields) (string, error) {
	ref, _, err := s.coll().Add(ctx, firestoreValues(fields))
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

// Patch fails with codes.NotFound when id does not exist.
func (s *FirestoreStore) Patch(ctx context.Context, id string, fields contracts.Fields) error {
	updates := make([]firestore.Update, 0, len(fields))
	for path, v := range firestoreValues(fields) {
		updates = append(updates, firestore.Update{Path: path, Value: v})
	}
	_, err := s.coll().Doc(id).Update(ctx, updates)
	return err
}

func (s *FirestoreStore) Remove(ctx context.Context, id string) error {
	_, err := s.coll().Doc(id).Delete(ctx)
	return err
}

func (s *FirestoreStore) Get(ctx context.Context, id string) (*domain.Product, error) {
	snap, err := s.coll().Doc(id).Get(ctx)
	if err != nil {
		return nil, err
	}
	var doc m_product.Document
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}
	p := doc.ToDomain(snap.Ref.ID)
	return &p, nil
}

// firestoreValues swaps the ServerTimestamp sentinel for Firestore's own.
func firestoreValues(fields contracts.Fields) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if m_product.IsServerTimestamp(v) {
			v = firestore.ServerTimestamp
		}
		out[k] = v
	}
	return out
}

type firestoreSubscription struct {
	ch     chan contracts.Snapshot
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func (f *firestoreSubscription) Snapshots() <-chan contracts.Snapshot { return f.ch }

// Close stops the listener and waits for its goroutine to exit.
func (f *firestoreSubscription) Close() error {
	f.once.Do(f.cancel)
	<-f.done
	return nil
}
