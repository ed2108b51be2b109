package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Factura is the invoice header. Total is written once, inside the creation
// transaction, from the store's own SUM over the detalle rows — never from a
// client-side float computation.
type Factura struct {
	ID        uint            `gorm:"column:id_factura;primaryKey"`
	ClienteID uint            `gorm:"column:id_cliente;index;not null"`
	Fecha     time.Time       `gorm:"type:date;not null"`
	Total     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`

	Cliente  *Cliente         `gorm:"foreignKey:ClienteID"`
	Detalles []DetalleFactura `gorm:"foreignKey:FacturaID"`
}

func (Factura) TableName() string { return "facturas" }

// DetalleFactura is one product line under a factura. Subtotal is a generated
// column (precio * cantidad) maintained by the database; Go never writes it.
type DetalleFactura struct {
	ID         uint            `gorm:"column:id_detalle;primaryKey"`
	FacturaID  uint            `gorm:"column:id_factura;index;not null"`
	ProductoID uint            `gorm:"column:id_producto;not null"`
	Cantidad   int             `gorm:"not null"`
	Precio     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(14,2);->"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (DetalleFactura) TableName() string { return "detalle_factura" }
