package repository

import (
	"context"

	"github.com/Jess-Moreno/easyfact-one-o-prototipo-easyfact/internal/dto"
	"github.com/Jess-Moreno/easyfact-one-o-prototipo-easyfact/internal/model"

	"gorm.io/gorm"
)

// FacturaRepository defines the data access contract for invoices.
// The *Tx methods participate in a transaction owned by the service layer:
// header, detalle rows and the total recomputation commit or roll back as
// one unit.
type FacturaRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, f *model.Factura) error
	CreateDetalleTx(ctx context.Context, tx *gorm.DB, d *model.DetalleFactura) error
	// RecalcularTotalTx persists the header total from the store's own
	// aggregate over the detalle rows, avoiding any client-side rounding
	// drift.
	RecalcularTotalTx(ctx context.Context, tx *gorm.DB, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Factura, error)
	// List returns invoices joined with the owning client, most recent
	// first. An empty filter means no restriction; the client filter is a
	// case-insensitive substring match.
	List(ctx context.Context, filter dto.FacturaFilter) ([]model.Factura, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type facturaRepo struct{ db *gorm.DB }

func NewFacturaRepository(db *gorm.DB) FacturaRepository { return &facturaRepo{db: db} }

func (r *facturaRepo) DB() *gorm.DB { return r.db }

func (r *facturaRepo) CreateTx(ctx context.Context, tx *gorm.DB, f *model.Factura) error {
	return translate(tx.WithContext(ctx).Create(f).Error)
}

func (r *facturaRepo) CreateDetalleTx(ctx context.Context, tx *gorm.DB, d *model.DetalleFactura) error {
	return translate(tx.WithContext(ctx).Create(d).Error)
}

func (r *facturaRepo) RecalcularTotalTx(ctx context.Context, tx *gorm.DB, id uint) error {
	return translate(tx.WithContext(ctx).Exec(`
		UPDATE facturas
		   SET total = (SELECT COALESCE(SUM(df.subtotal), 0)
		                  FROM detalle_factura df
		                 WHERE df.id_factura = facturas.id_factura)
		 WHERE id_factura = ?`, id).Error)
}

func (r *facturaRepo) FindByID(ctx context.Context, id uint) (*model.Factura, error) {
	var f model.Factura
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Detalles.Producto").
		First(&f, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

func (r *facturaRepo) List(ctx context.Context, filter dto.FacturaFilter) ([]model.Factura, error) {
	var facturas []model.Factura

	q := r.db.WithContext(ctx).Model(&model.Factura{}).
		Joins("JOIN clientes c ON c.id_cliente = facturas.id_cliente")

	if filter.Cliente != "" {
		q = q.Where("c.nombre ILIKE ?", "%"+filter.Cliente+"%")
	}

	// id_factura DESC keeps same-day invoices in creation order (fecha is a DATE)
	err := q.Preload("Cliente").
		Order("facturas.fecha DESC, facturas.id_factura DESC").
		Find(&facturas).Error
	return facturas, translate(err)
}
