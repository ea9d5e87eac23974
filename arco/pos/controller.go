// Package pos drives the sale screen: product lookup, draft accumulation
// and invoice submission against the ERP services.
package pos

import (
	"context"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"

	"github.com/arco365/go-arco-pos/arco"
	"github.com/arco365/go-arco-pos/arco/api"
	"github.com/arco365/go-arco-pos/arco/config"
	"github.com/arco365/go-arco-pos/arco/invoice"
	"github.com/arco365/go-arco-pos/arco/model"
	"github.com/arco365/go-arco-pos/arco/session"
)

var logger = log.WithField("component", "arco.pos")

// MaxCodeLen is a hard input constraint of the ERP catalog, product codes
// never exceed seven characters.
const MaxCodeLen = 7

// Notifier receives the transient user-facing messages the web front end
// showed as toasts.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}

type Controller struct {
	products api.ProductService
	invoices api.InvoiceService
	sessions *session.Store
	defaults config.InvoiceDefaults
	notifier Notifier
	clock    clockwork.Clock

	draft      *invoice.Draft
	found      *model.Producto
	searching  bool
	submitting bool
}

func NewController(
	products api.ProductService,
	invoices api.InvoiceService,
	sessions *session.Store,
	defaults config.InvoiceDefaults,
	notifier Notifier,
	clock clockwork.Clock,
) *Controller {
	return &Controller{
		products: products,
		invoices: invoices,
		sessions: sessions,
		defaults: defaults,
		notifier: notifier,
		clock:    clock,
		draft:    invoice.NewDraft(),
	}
}

// SanitizeCode enforces the catalog code limit. Overlong input is cut to
// the first seven characters with a warning, it is not a validation error.
func (c *Controller) SanitizeCode(code string) string {
	runes := []rune(code)
	if len(runes) <= MaxCodeLen {
		return code
	}
	c.notifier.Error("El código del producto no puede tener más de 7 caracteres")
	return string(runes[:MaxCodeLen])
}

// Search looks the code up in the catalog and keeps the result as the
// current found product. An empty code is a no-op.
func (c *Controller) Search(ctx context.Context, code string) error {
	if c.searching {
		return nil
	}

	code = c.SanitizeCode(code)
	if code == "" {
		return nil
	}

	c.searching = true
	defer func() { c.searching = false }()

	p, err := c.products.Get(ctx, code)
	if err != nil {
		c.found = nil
		logger.Debugf("product search failed: %v", err)
		if errors.Is(err, arco.ErrNotFound) {
			c.notifier.Error("Producto no encontrado: " + code)
		} else {
			c.notifier.Error("Error al buscar el producto")
		}
		return err
	}

	c.found = p
	c.notifier.Success("Producto encontrado")
	return nil
}

// Found returns the product of the most recent successful search, if any.
func (c *Controller) Found() *model.Producto {
	return c.found
}

// AddFound moves the current found product onto the draft as a new line
// with quantity 1 and forgets it.
func (c *Controller) AddFound() error {
	if c.found == nil {
		return errors.Wrap(arco.ErrValidation, "no product to add")
	}

	if _, err := c.draft.Add(c.found); err != nil {
		c.notifier.Error("El producto no tiene precio de lista")
		return err
	}

	c.found = nil
	c.notifier.Success("Producto agregado a la factura")
	return nil
}

func (c *Controller) SetQuantity(id uuid.UUID, qty int) {
	c.draft.SetQuantity(id, qty)
}

func (c *Controller) Remove(id uuid.UUID) {
	if c.draft.Remove(id) {
		c.notifier.Info("Producto eliminado de la factura")
	}
}

func (c *Controller) Draft() *invoice.Draft {
	return c.draft
}

// Submit sends the draft as an invoice. An empty draft is rejected locally
// without touching the network. On success the draft is cleared; on
// failure it stays intact for retry.
func (c *Controller) Submit(ctx context.Context) (*model.FacturaResponse, error) {
	if c.submitting {
		return nil, errors.Wrap(arco.ErrValidation, "submission already in progress")
	}
	if c.draft.Len() == 0 {
		c.notifier.Error("Debe agregar al menos un producto")
		return nil, errors.Wrap(arco.ErrValidation, "empty draft")
	}

	c.submitting = true
	defer func() { c.submitting = false }()

	factura := c.buildFactura()
	res, err := c.invoices.Insert(ctx, factura)
	if err != nil {
		logger.Debugf("invoice submission failed: %v", err)
		c.notifier.Error("Error al crear la factura")
		return nil, err
	}

	c.draft.Clear()
	c.notifier.Success("Factura creada exitosamente con ID: " + formatFacturaId(res.FacturaId))
	return res, nil
}

// Logout tears the screen session down: token gone, draft gone.
func (c *Controller) Logout() {
	if err := c.sessions.Clear(); err != nil {
		logger.Warnf("can't clear session: %v", err)
	}
	c.draft.Clear()
	c.found = nil
}

func formatFacturaId(id int64) string {
	return strconv.FormatInt(id, 10)
}

// buildFactura snapshots the draft plus the configured operational
// metadata. The snapshot is independent of the draft it came from.
func (c *Controller) buildFactura() *model.Factura {
	items := c.draft.Items()

	detalle := make([]model.FacturaDetalle, 0, len(items))
	for _, item := range items {
		detalle = append(detalle, model.FacturaDetalle{
			ProductoId:               item.ProductID,
			FacturaDetalleCantidad:   item.Quantity,
			FacturaDetalleVrUnitario: item.UnitPrice.InexactFloat64(),
			FacturaDetalleDcto:       0,
			FacturaDetalleTotalPC:    0,
			FacturaDetalleTipoFlete:  "N",
			FacturaDetalleNotaLong:   "",
			FacturaLoteId:            "0",
		})
	}

	return &model.Factura{
		DocumentoId:           c.defaults.DocumentoId,
		FacturaResolucionTipo: c.defaults.ResolucionTipo,
		FacturaFecha:          c.clock.Now().Format("2006-01-02"),
		ClienteId:             c.defaults.ClienteId,
		FacturaTipoOperacion:  c.defaults.TipoOperacion,
		FacturaBodegaId:       c.defaults.BodegaId,
		FacturaTipoPago:       c.defaults.TipoPago,
		Detalle:               detalle,
	}
}
