package repository

import (
	"context"

	"github.com/Jess-Moreno/easyfact-one-o-prototipo-easyfact/internal/model"

	"gorm.io/gorm"
)

// ClienteRepository defines the data access contract for clients.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs.
type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	// FindByNombre resolves a display name to its row with an exact,
	// case-sensitive match. Returns ErrNoEncontrado when no row matches.
	FindByNombre(ctx context.Context, nombre string) (*model.Cliente, error)
	List(ctx context.Context) ([]model.Cliente, error)
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *clienteRepo) FindByNombre(ctx context.Context, nombre string) (*model.Cliente, error) {
	var c model.Cliente
	if err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *clienteRepo) List(ctx context.Context) ([]model.Cliente, error) {
	var clientes []model.Cliente
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&clientes).Error
	return clientes, translate(err)
}
