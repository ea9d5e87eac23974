// Package invoice keeps the in-progress invoice while the sale screen is open.
package invoice

import (
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arco365/go-arco-pos/arco/model"
)

var oneHundred = decimal.NewFromInt(100)

// LineItem is one product entry on the draft. Items carry their own id so
// edits and removals address the item itself, never a list position.
type LineItem struct {
	ID          uuid.UUID
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	VATRate     decimal.Decimal
	Subtotal    decimal.Decimal
	VAT         decimal.Decimal
	Total       decimal.Decimal
}

// Totals are element-wise sums across all line items.
type Totals struct {
	Subtotal decimal.Decimal
	VAT      decimal.Decimal
	Total    decimal.Decimal
}

// Draft is an ordered, mutable sequence of line items. Insertion order is
// display order. It only exists between login and logout and is cleared on
// successful submission.
type Draft struct {
	items []LineItem
}

func NewDraft() *Draft {
	return &Draft{}
}

var ErrNoPrice = errors.New("product has no listed price")

// Add appends a line built from the product's first listed price, with
// quantity fixed at 1. Adding the same code twice yields two independent
// lines.
func (d *Draft) Add(p *model.Producto) (LineItem, error) {
	if len(p.Precio) == 0 {
		return LineItem{}, ErrNoPrice
	}

	price := decimal.NewFromFloat(p.Precio[0].PrecioLista)
	rate := decimal.NewFromFloat(p.ProductoTasaIVA)
	vat := price.Mul(rate).Div(oneHundred)

	item := LineItem{
		ID:          uuid.New(),
		ProductID:   p.ProductoId,
		ProductName: p.ProductoNombre,
		Quantity:    1,
		UnitPrice:   price,
		VATRate:     rate,
		Subtotal:    price,
		VAT:         vat,
		Total:       price.Add(vat),
	}
	d.items = append(d.items, item)
	return item, nil
}

// SetQuantity rescales the addressed line for the new quantity. Quantities
// below 1 are ignored. VAT is recomputed from the stored rate, not scaled
// from the previous amount.
func (d *Draft) SetQuantity(id uuid.UUID, qty int) bool {
	if qty < 1 {
		return false
	}

	for i := range d.items {
		if d.items[i].ID != id {
			continue
		}
		item := &d.items[i]
		item.Quantity = qty
		item.Subtotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
		item.VAT = item.Subtotal.Mul(item.VATRate).Div(oneHundred)
		item.Total = item.Subtotal.Add(item.VAT)
		return true
	}
	return false
}

// Remove deletes the addressed line, keeping the relative order of the rest.
func (d *Draft) Remove(id uuid.UUID) bool {
	for i := range d.items {
		if d.items[i].ID == id {
			d.items = append(d.items[:i], d.items[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns the lines in display order. The slice is a copy, mutate
// through the Draft methods.
func (d *Draft) Items() []LineItem {
	out := make([]LineItem, len(d.items))
	copy(out, d.items)
	return out
}

func (d *Draft) Len() int {
	return len(d.items)
}

func (d *Draft) Clear() {
	d.items = nil
}

func (d *Draft) Totals() Totals {
	t := Totals{
		Subtotal: decimal.Zero,
		VAT:      decimal.Zero,
		Total:    decimal.Zero,
	}
	for _, item := range d.items {
		t.Subtotal = t.Subtotal.Add(item.Subtotal)
		t.VAT = t.VAT.Add(item.VAT)
		t.Total = t.Total.Add(item.Total)
	}
	return t
}
