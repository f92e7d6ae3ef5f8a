// Package cart holds the per-session shopping cart. Carts live in memory
// only: a session that ends takes its cart with it, which is deliberate —
// nothing here needs to survive a restart.
package cart

import (
	"sync"

	"github.com/dlcastillo/storefront/internal/models"
	"github.com/google/uuid"
)

// Line pairs a product snapshot with a quantity. The snapshot is taken at
// add time; later catalog price or stock changes do not flow into it.
type Line struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

type Cart struct {
	mu         sync.Mutex
	lines      map[uuid.UUID]*Line
	order      []uuid.UUID
	totalItems int
	totalPrice float64
}

func New() *Cart {
	return &Cart{lines: make(map[uuid.UUID]*Line)}
}

// Add creates a line with quantity clamped to [1, stock], or raises an
// existing line by qty up to the snapshot's stock. Out-of-stock products are
// ignored.
func (c *Cart) Add(product models.Product, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if product.Stock <= 0 {
		return
	}

	line, exists := c.lines[product.ID]
	if !exists {
		c.lines[product.ID] = &Line{
			Product:  product,
			Quantity: clamp(qty, 1, product.Stock),
		}
		c.order = append(c.order, product.ID)
		c.recompute()
		return
	}

	line.Quantity = clamp(line.Quantity+qty, 1, line.Product.Stock)
	c.recompute()
}

// UpdateQuantity sets the stored quantity to qty clamped to [1, stock].
// A qty of zero or less removes the line entirely.
func (c *Cart) UpdateQuantity(productID uuid.UUID, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	line, exists := c.lines[productID]
	if !exists {
		return
	}

	if qty <= 0 {
		c.remove(productID)
		c.recompute()
		return
	}

	line.Quantity = clamp(qty, 1, line.Product.Stock)
	c.recompute()
}

// Remove is idempotent; removing an absent line is not an error.
func (c *Cart) Remove(productID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.remove(productID)
	c.recompute()
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = make(map[uuid.UUID]*Line)
	c.order = nil
	c.recompute()
}

func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.lines) == 0
}

func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.totalItems
}

func (c *Cart) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.totalPrice
}

// Lines returns the cart contents in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		lines = append(lines, *c.lines[id])
	}

	return lines
}

// View is the serializable shape handed to API consumers.
type View struct {
	Items      []Line  `json:"items"`
	TotalItems int     `json:"total_items"`
	TotalPrice float64 `json:"total_price"`
}

func (c *Cart) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		lines = append(lines, *c.lines[id])
	}

	return View{
		Items:      lines,
		TotalItems: c.totalItems,
		TotalPrice: c.totalPrice,
	}
}

func (c *Cart) remove(productID uuid.UUID) {
	if _, exists := c.lines[productID]; !exists {
		return
	}

	delete(c.lines, productID)

	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// recompute keeps the derived totals in step with every mutation; callers
// hold the lock.
func (c *Cart) recompute() {
	c.totalItems = 0
	c.totalPrice = 0

	for _, line := range c.lines {
		c.totalItems += line.Quantity
		c.totalPrice += float64(line.Quantity) * line.Product.Price
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}
