// Package model holds the wire types of the ArcoERP REST contract.
// Field names follow the remote JSON exactly; money travels as plain numbers.
package model

type LoginRequest struct {
	User        string `json:"User"`
	Password    string `json:"Password"`
	CompanyName string `json:"CompanyName"`
}

type LoginResponse struct {
	Token       string `json:"Token"`
	UserName    string `json:"UserName,omitempty"`
	CompanyName string `json:"CompanyName,omitempty"`
}

type Precio struct {
	PrecioLista float64 `json:"PrecioLista"`
}

type Producto struct {
	ProductoId      string   `json:"ProductoId"`
	ProductoNombre  string   `json:"ProductoNombre"`
	ProductoTasaIVA float64  `json:"ProductoTasaIVA"`
	Precio          []Precio `json:"Precio"`
}

type FacturaDetalle struct {
	ProductoId               string  `json:"ProductoId"`
	FacturaDetalleCantidad   int     `json:"FacturaDetalleCantidad"`
	FacturaDetalleVrUnitario float64 `json:"FacturaDetalleVrUnitario"`
	FacturaDetalleDcto       float64 `json:"FacturaDetalleDcto"`
	FacturaDetalleTotalPC    float64 `json:"FacturaDetalleTotalPC"`
	FacturaDetalleTipoFlete  string  `json:"FacturaDetalleTipoFlete"`
	FacturaDetalleNotaLong   string  `json:"FacturaDetalleNotaLong"`
	FacturaLoteId            string  `json:"FacturaLoteId"`
}

type Factura struct {
	DocumentoId           int              `json:"DocumentoId"`
	FacturaResolucionTipo string           `json:"FacturaResolucionTipo"`
	FacturaFecha          string           `json:"FacturaFecha"`
	ClienteId             string           `json:"ClienteId"`
	FacturaTipoOperacion  string           `json:"FacturaTipoOperacion"`
	FacturaBodegaId       string           `json:"FacturaBodegaId"`
	FacturaTipoPago       string           `json:"FacturaTipoPago"`
	Detalle               []FacturaDetalle `json:"Detalle"`
}

type FacturaResponse struct {
	FacturaId int64 `json:"FacturaId"`
}
