// Package inventory holds the authoritative in-memory product list and the
// single product currently open for editing.
//
// Every mutation replaces the list with a new slice. Operations never fail:
// an unknown identifier turns the operation into a no-op. Validation belongs
// to callers.
package inventory

import (
	"math"
	"slices"
	"sync"
	"time"

	"mini-inventory/internal/model"

	"github.com/google/uuid"
)

// Observer is notified after every applied mutation. Notifications are
// delivered one at a time in mutation order. Observers must not call back
// into the manager.
type Observer interface {
	Observe(event model.Event, snapshot Snapshot)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(event model.Event, snapshot Snapshot)

// Observe calls f.
func (f ObserverFunc) Observe(event model.Event, snapshot Snapshot) {
	f(event, snapshot)
}

// Snapshot is a point-in-time copy of the manager state.
type Snapshot struct {
	Products []model.Product
	Editing  *model.Product
}

// Manager owns the ordered product list and the optional edit-selection.
type Manager struct {
	mu        sync.RWMutex
	notifyMu  sync.Mutex
	products  []model.Product
	editing   *model.Product
	ids       IDGenerator
	now       func() time.Time
	observers []Observer
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the clock used to stamp events.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithObservers registers observers at construction time.
func WithObservers(observers ...Observer) Option {
	return func(m *Manager) {
		m.observers = append(m.observers, observers...)
	}
}

// NewManager creates an empty manager that takes identifiers from ids.
func NewManager(ids IDGenerator, opts ...Option) *Manager {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	m := &Manager{
		products: []model.Product{},
		ids:      ids,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Subscribe registers an observer for subsequent mutations.
func (m *Manager) Subscribe(o Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, o)
}

// Products returns a copy of the product list in insertion order.
func (m *Manager) Products() []model.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.products)
}

// Len returns the number of products.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.products)
}

// Lookup returns the product with the given ID.
func (m *Manager) Lookup(id string) (model.Product, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := m.indexOf(id)
	if i < 0 {
		return model.Product{}, false
	}
	return m.products[i], true
}

// Editing returns the product currently selected for editing.
func (m *Manager) Editing() (model.Product, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.editing == nil {
		return model.Product{}, false
	}
	return *m.editing, true
}

// Snapshot returns a copy of the whole state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

// Add appends a new product built from fields and returns it with its new ID.
func (m *Manager) Add(fields model.ProductFields) model.Product {
	m.mu.Lock()
	product := fields.WithID(m.ids.NewID())
	product.Quantity = max(0, product.Quantity)
	next := make([]model.Product, len(m.products), len(m.products)+1)
	copy(next, m.products)
	m.products = append(next, product)
	event := m.event(model.EventProductAdded, product.ID, product.Name, 0, product.Quantity)
	m.publishLocked(event)
	return product
}

// Update replaces the product whose ID matches p.ID, keeping its position.
// The edit-selection is cleared whether or not a product matched; when
// nothing matched, clearing it is published as an edit cancellation.
// It reports whether a product matched.
func (m *Manager) Update(p model.Product) bool {
	p.Quantity = max(0, p.Quantity)
	m.mu.Lock()
	matched := false
	before := 0
	next := make([]model.Product, len(m.products))
	for i, existing := range m.products {
		if existing.ID == p.ID {
			matched = true
			before = existing.Quantity
			next[i] = p
			continue
		}
		next[i] = existing
	}
	previous := m.editing
	m.editing = nil

	switch {
	case matched:
		m.products = next
		m.publishLocked(m.event(model.EventProductUpdated, p.ID, p.Name, before, p.Quantity))
	case previous != nil:
		m.publishLocked(m.event(model.EventEditCancelled, previous.ID, previous.Name, previous.Quantity, previous.Quantity))
	default:
		m.mu.Unlock()
	}
	return matched
}

// Delete removes the product with the given ID. It reports whether a product
// was removed.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	i := m.indexOf(id)
	if i < 0 {
		m.mu.Unlock()
		return false
	}
	removed := m.products[i]
	next := make([]model.Product, 0, len(m.products)-1)
	for _, existing := range m.products {
		if existing.ID != id {
			next = append(next, existing)
		}
	}
	m.products = next
	m.publishLocked(m.event(model.EventProductDeleted, removed.ID, removed.Name, removed.Quantity, 0))
	return true
}

// SetQuantity stores max(0, quantity) on the product with the given ID and
// returns the updated product.
func (m *Manager) SetQuantity(id string, quantity int) (model.Product, bool) {
	m.mu.Lock()
	updated, event, ok := m.setQuantityLocked(id, func(int) int { return quantity })
	if !ok {
		m.mu.Unlock()
		return model.Product{}, false
	}
	m.publishLocked(event)
	return updated, true
}

// AdjustQuantity changes the quantity of the product by delta, clamping at
// zero and saturating at math.MaxInt.
func (m *Manager) AdjustQuantity(id string, delta int) (model.Product, bool) {
	m.mu.Lock()
	updated, event, ok := m.setQuantityLocked(id, func(current int) int { return addSaturating(current, delta) })
	if !ok {
		m.mu.Unlock()
		return model.Product{}, false
	}
	m.publishLocked(event)
	return updated, true
}

// SelectForEdit makes a copy of p the current edit-selection, replacing any
// previous one.
func (m *Manager) SelectForEdit(p model.Product) {
	m.mu.Lock()
	selected := p
	m.editing = &selected
	m.publishLocked(m.event(model.EventEditSelected, p.ID, p.Name, p.Quantity, p.Quantity))
}

// CancelEdit clears the edit-selection.
func (m *Manager) CancelEdit() {
	m.mu.Lock()
	var event model.Event
	if m.editing != nil {
		event = m.event(model.EventEditCancelled, m.editing.ID, m.editing.Name, m.editing.Quantity, m.editing.Quantity)
	} else {
		event = m.event(model.EventEditCancelled, "", "", 0, 0)
	}
	m.editing = nil
	m.publishLocked(event)
}

// Save dispatches on the intent type: a CreateIntent adds a product, an
// UpdateIntent replaces one. It returns the product as saved and false when
// an update matched nothing.
func (m *Manager) Save(intent model.SaveIntent) (model.Product, bool) {
	switch in := intent.(type) {
	case model.CreateIntent:
		return m.Add(in.Fields), true
	case model.UpdateIntent:
		saved := in.Product
		saved.Quantity = max(0, saved.Quantity)
		return saved, m.Update(in.Product)
	default:
		return model.Product{}, false
	}
}

func (m *Manager) setQuantityLocked(id string, quantity func(current int) int) (model.Product, model.Event, bool) {
	i := m.indexOf(id)
	if i < 0 {
		return model.Product{}, model.Event{}, false
	}
	current := m.products[i]
	updated := current
	updated.Quantity = max(0, quantity(current.Quantity))

	next := make([]model.Product, len(m.products))
	for j, existing := range m.products {
		if existing.ID == id {
			next[j] = updated
			continue
		}
		next[j] = existing
	}
	m.products = next
	return updated, m.event(model.EventQuantityChanged, id, current.Name, current.Quantity, updated.Quantity), true
}

func (m *Manager) indexOf(id string) int {
	return slices.IndexFunc(m.products, func(p model.Product) bool {
		return p.ID == id
	})
}

func (m *Manager) snapshotLocked() Snapshot {
	snap := Snapshot{Products: slices.Clone(m.products)}
	if m.editing != nil {
		editing := *m.editing
		snap.Editing = &editing
	}
	return snap
}

func (m *Manager) event(t model.EventType, productID, name string, before, after int) model.Event {
	return model.Event{
		ID:             uuid.New(),
		Type:           t,
		ProductID:      productID,
		Name:           name,
		QuantityBefore: before,
		QuantityAfter:  after,
		OccurredAt:     m.now(),
	}
}

// publishLocked releases m.mu and delivers event to the observers. notifyMu
// is taken before m.mu is released so deliveries keep mutation order.
func (m *Manager) publishLocked(event model.Event) {
	snap := m.snapshotLocked()
	observers := m.observers
	m.notifyMu.Lock()
	m.mu.Unlock()
	defer m.notifyMu.Unlock()

	for _, o := range observers {
		o.Observe(event, snap)
	}
}

func addSaturating(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}
