package dto

import "github.com/shopspring/decimal"

type CrearProductoRequest struct {
	Nombre      string  `json:"nombre"      validate:"required,min=2,max=120"`
	Descripcion *string `json:"descripcion"`
	// Precio is a pointer so that an explicit 0 (free sample) is distinguishable
	// from an absent field: nil fails required, a present zero passes min=0.
	Precio *decimal.Decimal `json:"precio" validate:"required,min=0"`
	Stock  int              `json:"stock"  validate:"min=0"`
}

type ProductoResponse struct {
	ID          uint            `json:"id_producto"`
	Nombre      string          `json:"nombre"`
	Descripcion *string         `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
}

// ConsultaPrecioResponse is returned by the public price check endpoint.
type ConsultaPrecioResponse struct {
	ID     uint            `json:"id_producto"`
	Nombre string          `json:"nombre"`
	Precio decimal.Decimal `json:"precio"`
	Stock  int             `json:"stock"`
}
