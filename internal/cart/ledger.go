package cart

import (
	"github.com/shopease/shopease-backend/pkg/db/models"
	pkgerrors "github.com/shopease/shopease-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Line is one cart entry: a product identity plus a quantity. The unit
// price is captured at add time so later catalog changes cannot shift a
// cart total.
type Line struct {
	ProductID int64           `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

// Subtotal is unit price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Ledger holds the live cart lines in insertion order, at most one line
// per product identity. It is not safe for concurrent use; the owning
// session serializes access.
type Ledger struct {
	lines []Line
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// AddOrIncrement bumps the quantity of an existing line or appends a new
// line with quantity 1. Insertion order is preserved: the first add wins
// the position and later increments never move the line.
func (g *Ledger) AddOrIncrement(product models.Product) Line {
	for i := range g.lines {
		if g.lines[i].ProductID == product.ID {
			g.lines[i].Quantity++
			return g.lines[i]
		}
	}
	line := Line{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Image:     product.Image,
		Quantity:  1,
	}
	g.lines = append(g.lines, line)
	return line
}

// SetQuantity sets an existing line's quantity to exactly the given
// value. Zero removes the line. A quantity for a product with no line is
// a no-op: this operation never fabricates a line from product data.
// Negative quantities are rejected.
func (g *Ledger) SetQuantity(productID int64, quantity int) error {
	if quantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}
	for i := range g.lines {
		if g.lines[i].ProductID != productID {
			continue
		}
		if quantity == 0 {
			g.lines = append(g.lines[:i], g.lines[i+1:]...)
			return nil
		}
		g.lines[i].Quantity = quantity
		return nil
	}
	return nil
}

// Lines returns a copy of the ledger in insertion order.
func (g *Ledger) Lines() []Line {
	out := make([]Line, len(g.lines))
	copy(out, g.lines)
	return out
}

// TotalPrice sums unit price times quantity across all lines.
func (g *Ledger) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range g.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// TotalItems sums the quantities across all lines.
func (g *Ledger) TotalItems() int {
	total := 0
	for _, line := range g.lines {
		total += line.Quantity
	}
	return total
}

// Len returns the number of lines.
func (g *Ledger) Len() int {
	return len(g.lines)
}

// IsEmpty reports whether the ledger has no lines.
func (g *Ledger) IsEmpty() bool {
	return len(g.lines) == 0
}

// Clear empties all lines.
func (g *Ledger) Clear() {
	g.lines = nil
}
