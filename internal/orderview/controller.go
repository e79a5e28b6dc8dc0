package orderview

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tai160903/viet-coffee-server/internal/order"
)

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateEditing State = "editing"
)

// LoadFunc supplies the order collection for a view that fetches its data
// asynchronously.
type LoadFunc func(ctx context.Context) ([]order.Order, error)

// Controller holds the mutable state of one order-list screen: search term,
// status filter, sort config, current selection and modal visibility. Every
// input setter re-derives the visible collection synchronously through Apply.
type Controller struct {
	mu sync.Mutex

	state    State
	orders   []order.Order
	query    Query
	selected *order.Order
	loadErr  string
}

// NewController returns a controller that is already Loaded with the given
// collection, the shape used by screens whose data is seeded synchronously.
func NewController(orders []order.Order) *Controller {
	return &Controller{
		state:  StateLoaded,
		orders: orders,
		query:  Query{Status: StatusAll, Sort: SortConfig{Key: SortByDate, Direction: Descending}},
	}
}

// NewIdleController returns a controller that has no data yet and expects a
// Load call, the shape used by screens that simulate an asynchronous fetch.
func NewIdleController() *Controller {
	c := NewController(nil)
	c.state = StateIdle
	return c
}

// Load transitions Idle -> Loading, waits out the given delay, then invokes
// fetch and transitions to Loaded. Cancelling ctx before the delay elapses
// abandons the load without touching state, so a torn-down view is never
// written to. A fetch failure surfaces as an inline error on a Loaded, empty
// view rather than a crash.
func (c *Controller) Load(ctx context.Context, delay time.Duration, fetch LoadFunc) {
	c.mu.Lock()
	c.state = StateLoading
	c.mu.Unlock()

	select {
	case <-ctx.Done():
		return
	case <-time.After(delay):
	}

	orders, err := fetch(ctx)

	if ctx.Err() != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = StateLoaded
	if err != nil {
		log.Warn().Err(err).Msg("orderview: load failed")
		c.orders = nil
		c.loadErr = err.Error()
		return
	}

	c.orders = orders
	c.loadErr = ""
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the inline load error, empty when the last load succeeded.
func (c *Controller) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}

func (c *Controller) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query.Search = term
}

func (c *Controller) SetStatusFilter(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query.Status = status
}

// RequestSort applies column-header click semantics to the sort config.
func (c *Controller) RequestSort(key SortKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query.Sort = c.query.Sort.Toggle(key)
}

func (c *Controller) Sort() SortConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query.Sort
}

// Visible derives the currently visible rows from the full collection.
func (c *Controller) Visible() []order.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Apply(c.orders, c.query)
}

// TotalCount reports the size of the unfiltered collection, used by the
// display-only pagination footer.
func (c *Controller) TotalCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.orders)
}

// OpenDetails captures the selected order and transitions Loaded -> Editing.
// Selecting an unknown code is a no-op.
func (c *Controller) OpenDetails(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateLoaded {
		return
	}

	for i := range c.orders {
		if c.orders[i].Code == code {
			selected := c.orders[i]
			c.selected = &selected
			c.state = StateEditing
			return
		}
	}
}

// CloseDetails drops the selection and returns to Loaded.
func (c *Controller) CloseDetails() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateEditing {
		return
	}

	c.selected = nil
	c.state = StateLoaded
}

// Selected returns the order captured by OpenDetails, nil outside Editing.
func (c *Controller) Selected() *order.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}
