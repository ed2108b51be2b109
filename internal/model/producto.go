package model

import (
	"github.com/shopspring/decimal"
)

// Producto is a catalog entry. Precio is the unit price charged at invoice
// time; invoices copy it into their line items so later price changes do not
// rewrite history.
type Producto struct {
	ID          uint   `gorm:"column:id_producto;primaryKey"`
	Nombre      string `gorm:"index;not null"`
	Descripcion *string
	Precio      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock       int             `gorm:"not null;default:0"`
}

func (Producto) TableName() string { return "productos" }
