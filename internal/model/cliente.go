package model

// Cliente is a registered customer. Rows are insert-only: the registration
// flow never updates or deletes a client.
type Cliente struct {
	ID        uint   `gorm:"column:id_cliente;primaryKey"`
	Nombre    string `gorm:"index;not null"`
	Documento string `gorm:"not null"`
	Direccion *string
	Telefono  *string
	Correo    *string
}

func (Cliente) TableName() string { return "clientes" }
