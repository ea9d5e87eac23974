package api

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/arco365/go-arco-pos/arco/model"
)

type InvoiceService interface {
	Insert(ctx context.Context, factura *model.Factura) (*model.FacturaResponse, error)
}

type invoice struct {
	client Client
}

func NewInvoiceService(client Client) InvoiceService {
	return &invoice{client: client}
}

// Insert submits a finished invoice snapshot and returns the identifier
// the ERP assigned to it.
func (i *invoice) Insert(ctx context.Context, factura *model.Factura) (*model.FacturaResponse, error) {

	log.Debugf("Inserting invoice with %d lines", len(factura.Detalle))

	res := &model.FacturaResponse{}
	err := i.client.PostJson(ctx, "/Factura/Insert", factura, res)
	if err != nil {
		return nil, err
	}
	return res, nil
}
