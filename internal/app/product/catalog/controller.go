// Package catalog keeps a live in-memory mirror of the product collection and
// derives the searched and status-filtered views shown to users.
package catalog

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	contracts "github.com/gizigo/product-console/internal/app/product/contracts"
	"github.com/gizigo/product-console/internal/app/product/domain"
	"github.com/gizigo/product-console/internal/app/product/storeerr"
	"github.com/gizigo/product-console/internal/models/m_product"
)

// State of the mirror.
type State int

const (
	// StateLoading is the state before the first snapshot arrives.
	StateLoading State = iota
	// StateReady means at least one snapshot was received.
	StateReady
	// StateFailed is terminal until Open is called again.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "loading"
	}
}

// ErrSubscriptionEnded is reported when the store stops a subscription
// without saying why.
var ErrSubscriptionEnded = errors.New("catalog: subscription ended unexpectedly")

// Query is the ordering every catalog subscription uses: newest first.
var Query = contracts.Query{OrderBy: m_product.FieldCreatedAt, Descending: true}

// View is one consistent read of the controller.
type View struct {
	State      State
	Products   []domain.Product
	Counts     Counts
	SearchTerm string
	Filter     StatusFilter
	Err        error
}

// Controller owns exactly one live subscription at a time. Every snapshot
// replaces the whole base list; filters are applied on read.
type Controller struct {
	store contracts.Store
	log   *zap.Logger

	// life serializes Open and Close.
	life sync.Mutex

	mu       sync.Mutex
	state    State
	products []domain.Product
	search   string
	filter   StatusFilter
	err      error
	running  bool
	runCtx   context.Context
	cancel   context.CancelFunc
	done     chan struct{}

	changes chan struct{}
}

// NewController builds a controller over store. A nil store is accepted and
// makes Open fail with a store-unavailable error.
func NewController(store contracts.Store, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		store:    store,
		log:      log,
		filter:   StatusAll,
		products: []domain.Product{},
		changes:  make(chan struct{}, 1),
	}
}

// Open subscribes to the collection. Calling it while a subscription is live
// is a no-op; after a failure it subscribes again. The subscription lives
// until Close or until ctx is done.
func (c *Controller) Open(ctx context.Context) error {
	c.life.Lock()
	defer c.life.Unlock()

	c.mu.Lock()
	live := c.running && c.state != StateFailed && c.runCtx.Err() == nil
	prev := c.done
	c.mu.Unlock()
	if live {
		return nil
	}
	if prev != nil {
		// The previous run is failed or cancelled; wait until it released its subscription.
		<-prev
	}

	if c.store == nil {
		err := domain.StoreUnavailable(domain.OpRead)
		c.fail(err)
		return err
	}

	c.mu.Lock()
	c.state = StateLoading
	c.err = nil
	c.products = []domain.Product{}
	c.mu.Unlock()
	c.notify()

	runCtx, cancel := context.WithCancel(ctx)
	sub, err := c.store.Subscribe(runCtx, Query)
	if err != nil {
		cancel()
		classified := storeerr.Classify(domain.OpRead, err)
		c.fail(classified)
		return classified
	}

	done := make(chan struct{})
	c.mu.Lock()
	c.running = true
	c.runCtx = runCtx
	c.cancel = cancel
	c.done = done
	c.mu.Unlock()

	c.log.Info("catalog subscription opened")
	go c.run(runCtx, sub, done)
	return nil
}

// Close releases the subscription and waits until it is closed. The last
// state and list stay readable.
func (c *Controller) Close() {
	c.life.Lock()
	defer c.life.Unlock()

	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (c *Controller) run(ctx context.Context, sub contracts.Subscription, done chan struct{}) {
	defer close(done)
	defer func() {
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
	}()
	defer func() {
		if err := sub.Close(); err != nil {
			c.log.Warn("closing catalog subscription", zap.Error(err))
		}
		c.log.Info("catalog subscription released")
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-sub.Snapshots():
			switch {
			case !ok:
				if ctx.Err() == nil {
					c.fail(storeerr.Classify(domain.OpRead, ErrSubscriptionEnded))
				}
				return
			case snap.Err != nil:
				c.fail(storeerr.Classify(domain.OpRead, snap.Err))
				return
			default:
				c.replace(snap.Products)
			}
		}
	}
}

func (c *Controller) replace(products []domain.Product) {
	if products == nil {
		products = []domain.Product{}
	}
	c.mu.Lock()
	c.products = products
	c.state = StateReady
	c.err = nil
	c.mu.Unlock()

	c.log.Debug("catalog snapshot", zap.Int("products", len(products)))
	c.notify()
}

func (c *Controller) fail(err error) {
	c.mu.Lock()
	c.state = StateFailed
	c.err = err
	c.mu.Unlock()

	c.log.Error("catalog subscription failed", zap.Error(err))
	c.notify()
}

func (c *Controller) notify() {
	select {
	case c.changes <- struct{}{}:
	default:
	}
}

// Changes signals after any state, list or filter change. Signals coalesce:
// a receiver should re-read View rather than count them.
func (c *Controller) Changes() <-chan struct{} {
	return c.changes
}

func (c *Controller) SetSearchTerm(term string) {
	c.mu.Lock()
	c.search = term
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) SetStatusFilter(f StatusFilter) {
	c.mu.Lock()
	c.filter = f
	c.mu.Unlock()
	c.notify()
}

// View returns the filtered list, the counts of the unfiltered list and the
// current state in one consistent read.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked(c.search, c.filter)
}

// ViewWith is View with the given search term and status filter in place of
// the controller's own. Nothing is stored, so concurrent readers sharing one
// controller do not disturb each other.
func (c *Controller) ViewWith(term string, filter StatusFilter) View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked(term, filter)
}

func (c *Controller) viewLocked(term string, filter StatusFilter) View {
	return View{
		State:      c.state,
		Products:   Filter(c.products, term, filter),
		Counts:     CountByStatus(c.products),
		SearchTerm: term,
		Filter:     filter,
		Err:        c.err,
	}
}

// Products returns a copy of the unfiltered base list.
func (c *Controller) Products() []domain.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.CloneAll(c.products)
}

func (c *Controller) Counts() Counts {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CountByStatus(c.products)
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the classified failure while in StateFailed.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}
