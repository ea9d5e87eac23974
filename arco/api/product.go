package api

import (
	"context"
	"net/url"

	log "github.com/sirupsen/logrus"

	"github.com/arco365/go-arco-pos/arco/model"
)

type ProductService interface {
	Get(ctx context.Context, code string) (*model.Producto, error)
}

type product struct {
	client Client
}

func NewProductService(client Client) ProductService {
	return &product{client: client}
}

// Get resolves a catalog code to its product record. Only the single most
// recent result is meant to be held by the caller; nothing is cached here.
func (p *product) Get(ctx context.Context, code string) (*model.Producto, error) {

	log.Debugf("Product lookup: %s", code)

	res := &model.Producto{}
	err := p.client.GetJson(ctx, "/Producto/Get/"+url.PathEscape(code), res)
	if err != nil {
		return nil, err
	}
	return res, nil
}
