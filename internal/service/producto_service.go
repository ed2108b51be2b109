package service

import (
	"context"
	"errors"

	"github.com/Jess-Moreno/easyfact-one-o-prototipo-easyfact/internal/dto"
	"github.com/Jess-Moreno/easyfact-one-o-prototipo-easyfact/internal/model"
	"github.com/Jess-Moreno/easyfact-one-o-prototipo-easyfact/internal/repository"
)

type ProductoService interface {
	Registrar(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Listar(ctx context.Context) ([]dto.ProductoResponse, error)
}

type productoService struct {
	repo repository.ProductoRepository
}

func NewProductoService(repo repository.ProductoRepository) ProductoService {
	return &productoService{repo: repo}
}

func (s *productoService) Registrar(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	// Validator already enforces required/min=0; re-check here so the rule
	// holds for any caller that bypasses the HTTP layer.
	if req.Precio == nil {
		return nil, errors.New("el precio es obligatorio")
	}
	if req.Precio.IsNegative() {
		return nil, errors.New("el precio no puede ser negativo")
	}
	if req.Stock < 0 {
		return nil, errors.New("el stock no puede ser negativo")
	}

	p := model.Producto{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Precio:      *req.Precio,
		Stock:       req.Stock,
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	return productoToResponse(&p), nil
}

func (s *productoService) Listar(ctx context.Context) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		resp = append(resp, *productoToResponse(&productos[i]))
	}
	return resp, nil
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:          p.ID,
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Precio:      p.Precio,
		Stock:       p.Stock,
	}
}
