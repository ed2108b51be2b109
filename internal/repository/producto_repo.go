package repository

import (
	"context"

	"github.com/Jess-Moreno/easyfact-one-o-prototipo-easyfact/internal/model"

	"gorm.io/gorm"
)

// ProductoRepository defines the data access contract for catalog products.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	// FindByNombre resolves a display name to the product row (id + current
	// price) with an exact, case-sensitive match. Returns ErrNoEncontrado
	// when no row matches.
	FindByNombre(ctx context.Context, nombre string) (*model.Producto, error)
	List(ctx context.Context) ([]model.Producto, error)
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

func (r *productoRepo) FindByNombre(ctx context.Context, nombre string) (*model.Producto, error) {
	var p model.Producto
	if err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *productoRepo) List(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&productos).Error
	return productos, translate(err)
}
