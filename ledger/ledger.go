// Package ledger tracks the open orders of the floor: one evolving ticket per
// occupied table, held in memory until payment. Nothing here touches the
// database; a ticket only becomes durable when the sale is committed.
package ledger

import (
	"errors"
	"sort"
	"sync"

	"mariscos-pos/models"
	"mariscos-pos/utils"
)

var (
	ErrNoOpenOrder   = errors.New("no open order for that table")
	ErrTableOccupied = errors.New("table is occupied")
	ErrLineNotFound  = errors.New("line not found")
	ErrPriceRequired = errors.New("price required for variable-price product")
	ErrInvalidPrice  = errors.New("invalid price")
	ErrInvalidName   = errors.New("name cannot be empty")
)

// LineItem is one row of an open ticket. Name and UnitPrice are snapshots the
// cashier may edit without touching the catalog.
type LineItem struct {
	ID        int     `json:"id"`
	ProductID uint    `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

func (li LineItem) Subtotal() float64 {
	return float64(li.Quantity) * li.UnitPrice
}

// Order is the ticket of one occupied table.
type Order struct {
	TableKey string
	Label    string
	Total    float64

	lines    map[int]*LineItem
	nextLine int
}

func (o *Order) recompute() {
	total := 0.0
	for _, li := range o.lines {
		total += li.Subtotal()
	}
	o.Total = total
}

// Lines returns the ticket rows in insertion order.
func (o *Order) Lines() []LineItem {
	out := make([]LineItem, 0, len(o.lines))
	for _, li := range o.lines {
		out = append(out, *li)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (o *Order) Empty() bool {
	return len(o.lines) == 0
}

// Snapshot is a read-only copy of an order handed to renderers and to the
// sale committer.
type Snapshot struct {
	TableKey string     `json:"tableKey"`
	Label    string     `json:"label"`
	Lines    []LineItem `json:"lines"`
	Total    float64    `json:"total"`
}

// Ledger owns every open order, keyed by table. One instance lives for the
// duration of the process and is driven by a single cashier; the mutex only
// guards against overlapping HTTP requests, not real multi-actor use.
type Ledger struct {
	mu     sync.Mutex
	orders map[string]*Order
}

func New() *Ledger {
	return &Ledger{orders: make(map[string]*Order)}
}

// Open marks a table occupied with an empty order. Re-opening an occupied
// table is a no-op returning the existing ticket.
func (l *Ledger) Open(tableKey, label string) Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	o, ok := l.orders[tableKey]
	if !ok {
		o = &Order{
			TableKey: tableKey,
			Label:    label,
			lines:    make(map[int]*LineItem),
			nextLine: 1,
		}
		l.orders[tableKey] = o
	}
	return snapshotOf(o)
}

// Get returns a copy of the open order for a table.
func (l *Ledger) Get(tableKey string) (Snapshot, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	o, ok := l.orders[tableKey]
	if !ok {
		return Snapshot{}, false
	}
	return snapshotOf(o), true
}

// Occupied reports whether a table has an open order.
func (l *Ledger) Occupied(tableKey string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.orders[tableKey]
	return ok
}

// AddLine adds a product to a table's ticket. Fixed-price products merge into
// an existing line by incrementing its quantity. Variable-price products need
// suppliedPrice and always get a fresh line, since each instance may cost
// differently.
func (l *Ledger) AddLine(tableKey string, product models.Product, suppliedPrice *float64) (LineItem, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	o, ok := l.orders[tableKey]
	if !ok {
		return LineItem{}, ErrNoOpenOrder
	}

	price := product.Price
	if product.VariablePrice {
		if suppliedPrice == nil {
			return LineItem{}, ErrPriceRequired
		}
		if !utils.ValidAmount(*suppliedPrice) {
			return LineItem{}, ErrInvalidPrice
		}
		price = *suppliedPrice
	} else {
		for _, li := range o.lines {
			if li.ProductID == product.ID {
				li.Quantity++
				o.recompute()
				return *li, nil
			}
		}
	}

	li := &LineItem{
		ID:        o.nextLine,
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: price,
		Quantity:  1,
	}
	o.nextLine++
	o.lines[li.ID] = li
	o.recompute()
	return *li, nil
}

// EditLine updates the name and/or unit price snapshot of one line.
func (l *Ledger) EditLine(tableKey string, lineID int, name *string, unitPrice *float64) (LineItem, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	o, ok := l.orders[tableKey]
	if !ok {
		return LineItem{}, ErrNoOpenOrder
	}
	li, ok := o.lines[lineID]
	if !ok {
		return LineItem{}, ErrLineNotFound
	}

	// Validate both fields before touching either, so a rejected edit
	// leaves the line exactly as it was.
	if name != nil && *name == "" {
		return LineItem{}, ErrInvalidName
	}
	if unitPrice != nil && !utils.ValidAmount(*unitPrice) {
		return LineItem{}, ErrInvalidPrice
	}

	if name != nil {
		li.Name = *name
	}
	if unitPrice != nil {
		li.UnitPrice = *unitPrice
	}
	o.recompute()
	return *li, nil
}

// AdjustQuantity mutates a line's quantity by delta. A quantity dropping to
// zero or below removes the line.
func (l *Ledger) AdjustQuantity(tableKey string, lineID, delta int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	o, ok := l.orders[tableKey]
	if !ok {
		return ErrNoOpenOrder
	}
	li, ok := o.lines[lineID]
	if !ok {
		return ErrLineNotFound
	}

	li.Quantity += delta
	if li.Quantity <= 0 {
		delete(o.lines, lineID)
	}
	o.recompute()
	return nil
}

// CloseIfEmpty frees a table only when its ticket has no lines left.
func (l *Ledger) CloseIfEmpty(tableKey string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	o, ok := l.orders[tableKey]
	if !ok {
		return ErrNoOpenOrder
	}
	if !o.Empty() {
		return ErrTableOccupied
	}
	delete(l.orders, tableKey)
	return nil
}

// Transfer moves an open order to a free table. The source becomes free and
// the order takes the destination's label.
func (l *Ledger) Transfer(fromKey, toKey, toLabel string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	o, ok := l.orders[fromKey]
	if !ok {
		return ErrNoOpenOrder
	}
	if _, taken := l.orders[toKey]; taken {
		return ErrTableOccupied
	}
	delete(l.orders, fromKey)
	o.TableKey = toKey
	o.Label = toLabel
	l.orders[toKey] = o
	return nil
}

// Remove frees a table unconditionally. The payment flow calls this after a
// successful commit; commit itself never mutates the ledger.
func (l *Ledger) Remove(tableKey string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.orders, tableKey)
}

func snapshotOf(o *Order) Snapshot {
	return Snapshot{
		TableKey: o.TableKey,
		Label:    o.Label,
		Lines:    o.Lines(),
		Total:    o.Total,
	}
}
