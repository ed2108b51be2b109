package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CrearFacturaRequest identifies cliente and productos by display name, the
// way the registration form does. Unit prices are NOT accepted from the
// caller: the stored product price is copied into each line at creation time.
type CrearFacturaRequest struct {
	Cliente string               `json:"cliente" validate:"required"`
	Items   []FacturaItemRequest `json:"items"   validate:"required,min=1,dive"`
}

type FacturaItemRequest struct {
	Producto string `json:"producto" validate:"required"`
	Cantidad int    `json:"cantidad" validate:"required,gt=0"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

// FacturaFilter restricts the listing to clients whose nombre contains the
// given substring (case-insensitive). Empty means no restriction.
type FacturaFilter struct {
	Cliente string `form:"cliente"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type FacturaItemResponse struct {
	Producto string          `json:"producto"`
	Cantidad int             `json:"cantidad"`
	Precio   decimal.Decimal `json:"precio"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type FacturaResponse struct {
	ID      uint                  `json:"id_factura"`
	Cliente string                `json:"cliente"`
	Fecha   string                `json:"fecha"`
	Total   decimal.Decimal       `json:"total"`
	Items   []FacturaItemResponse `json:"items"`
}

// FacturaListaItem is one row of the invoice listing (header + client name).
type FacturaListaItem struct {
	ID      uint            `json:"id_factura"`
	Cliente string          `json:"cliente"`
	Fecha   string          `json:"fecha"`
	Total   decimal.Decimal `json:"total"`
}
