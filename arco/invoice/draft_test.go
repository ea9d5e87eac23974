package invoice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arco365/go-arco-pos/arco/model"
)

func producto(id string, price, vatRate float64) *model.Producto {
	return &model.Producto{
		ProductoId:      id,
		ProductoNombre:  "Producto " + id,
		ProductoTasaIVA: vatRate,
		Precio:          []model.Precio{{PrecioLista: price}},
	}
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestDraft_Add(t *testing.T) {
	d := NewDraft()

	item, err := d.Add(producto("3001", 10000, 19))
	require.NoError(t, err)

	assert.Equal(t, 1, d.Len())
	assert.Equal(t, "3001", item.ProductID)
	assert.Equal(t, 1, item.Quantity)
	assert.True(t, item.Subtotal.Equal(dec(10000)), "subtotal: %s", item.Subtotal)
	assert.True(t, item.VAT.Equal(dec(1900)), "vat: %s", item.VAT)
	assert.True(t, item.Total.Equal(dec(11900)), "total: %s", item.Total)
}

func TestDraft_AddSameCodeTwice(t *testing.T) {
	d := NewDraft()

	first, err := d.Add(producto("3001", 10000, 19))
	require.NoError(t, err)
	second, err := d.Add(producto("3001", 10000, 19))
	require.NoError(t, err)

	// no de-duplication, two independent lines
	assert.Equal(t, 2, d.Len())
	assert.NotEqual(t, first.ID, second.ID)
}

func TestDraft_AddWithoutPrice(t *testing.T) {
	d := NewDraft()

	_, err := d.Add(&model.Producto{ProductoId: "3001"})
	assert.ErrorIs(t, err, ErrNoPrice)
	assert.Equal(t, 0, d.Len())
}

func TestDraft_SetQuantity(t *testing.T) {
	d := NewDraft()
	item, err := d.Add(producto("3001", 10000, 19))
	require.NoError(t, err)

	assert.True(t, d.SetQuantity(item.ID, 3))

	got := d.Items()[0]
	assert.Equal(t, 3, got.Quantity)
	assert.True(t, got.Subtotal.Equal(dec(30000)), "subtotal: %s", got.Subtotal)
	assert.True(t, got.VAT.Equal(dec(5700)), "vat: %s", got.VAT)
	assert.True(t, got.Total.Equal(dec(35700)), "total: %s", got.Total)
}

func TestDraft_SetQuantityBelowOneIsIgnored(t *testing.T) {
	d := NewDraft()
	item, err := d.Add(producto("3001", 10000, 19))
	require.NoError(t, err)

	assert.False(t, d.SetQuantity(item.ID, 0))
	assert.False(t, d.SetQuantity(item.ID, -5))

	got := d.Items()[0]
	assert.Equal(t, 1, got.Quantity)
	assert.True(t, got.Subtotal.Equal(dec(10000)))
	assert.True(t, got.VAT.Equal(dec(1900)))
	assert.True(t, got.Total.Equal(dec(11900)))
}

func TestDraft_SetQuantityFractionalRate(t *testing.T) {
	d := NewDraft()
	item, err := d.Add(producto("7105", 12990, 5))
	require.NoError(t, err)

	require.True(t, d.SetQuantity(item.ID, 4))

	got := d.Items()[0]
	assert.True(t, got.Subtotal.Equal(dec(51960)), "subtotal: %s", got.Subtotal)
	assert.True(t, got.VAT.Equal(dec(2598)), "vat: %s", got.VAT)
	assert.True(t, got.Total.Equal(dec(54558)), "total: %s", got.Total)
}

func TestDraft_Remove(t *testing.T) {
	d := NewDraft()
	_, err := d.Add(producto("1", 100, 19))
	require.NoError(t, err)
	second, err := d.Add(producto("2", 200, 19))
	require.NoError(t, err)
	_, err = d.Add(producto("3", 300, 19))
	require.NoError(t, err)

	assert.True(t, d.Remove(second.ID))
	assert.Equal(t, 2, d.Len())

	items := d.Items()
	assert.Equal(t, "1", items[0].ProductID)
	assert.Equal(t, "3", items[1].ProductID)

	// removing an unknown id does nothing
	assert.False(t, d.Remove(second.ID))
	assert.Equal(t, 2, d.Len())
}

func TestDraft_TotalsEmpty(t *testing.T) {
	d := NewDraft()

	totals := d.Totals()
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.VAT.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestDraft_Totals(t *testing.T) {
	d := NewDraft()
	_, err := d.Add(producto("3001", 10000, 19))
	require.NoError(t, err)
	item, err := d.Add(producto("3002", 5000, 19))
	require.NoError(t, err)
	require.True(t, d.SetQuantity(item.ID, 2))

	totals := d.Totals()
	assert.True(t, totals.Subtotal.Equal(dec(20000)), "subtotal: %s", totals.Subtotal)
	assert.True(t, totals.VAT.Equal(dec(3800)), "vat: %s", totals.VAT)
	assert.True(t, totals.Total.Equal(dec(23800)), "total: %s", totals.Total)
}

func TestDraft_Clear(t *testing.T) {
	d := NewDraft()
	_, err := d.Add(producto("3001", 10000, 19))
	require.NoError(t, err)

	d.Clear()
	assert.Equal(t, 0, d.Len())
	assert.True(t, d.Totals().Total.IsZero())
}
