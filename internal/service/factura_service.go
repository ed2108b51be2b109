package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Jess-Moreno/easyfact-one-o-prototipo-easyfact/internal/dto"
	"github.com/Jess-Moreno/easyfact-one-o-prototipo-easyfact/internal/model"
	"github.com/Jess-Moreno/easyfact-one-o-prototipo-easyfact/internal/repository"
	"github.com/Jess-Moreno/easyfact-one-o-prototipo-easyfact/internal/worker"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type FacturaService interface {
	Registrar(ctx context.Context, req dto.CrearFacturaRequest) (*dto.FacturaResponse, error)
	Listar(ctx context.Context, filter dto.FacturaFilter) ([]dto.FacturaListaItem, error)
}

type facturaService struct {
	repo         repository.FacturaRepository
	clienteRepo  repository.ClienteRepository
	productoRepo repository.ProductoRepository
	dispatcher   *worker.Dispatcher
}

func NewFacturaService(
	repo repository.FacturaRepository,
	clienteRepo repository.ClienteRepository,
	productoRepo repository.ProductoRepository,
	dispatcher *worker.Dispatcher,
) FacturaService {
	return &facturaService{
		repo:         repo,
		clienteRepo:  clienteRepo,
		productoRepo: productoRepo,
		dispatcher:   dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Registrar ────────────────────────────────────────────────────────────────
// Creation sequence:
//   1. Resolve cliente and every producto by exact name (read-only pre-flight;
//      an unresolved name aborts before any write)
//   2. BEGIN TX: insert header dated today, insert all detalle rows, recompute
//      the header total from SUM(detalle.subtotal)
//   3. COMMIT — any step failing rolls back the whole unit
//   4. (async, best-effort) enqueue the comprobante PDF/email job

func (s *facturaService) Registrar(ctx context.Context, req dto.CrearFacturaRequest) (*dto.FacturaResponse, error) {
	cliente, err := s.clienteRepo.FindByNombre(ctx, req.Cliente)
	if err != nil {
		return nil, fmt.Errorf("cliente %q: %w", req.Cliente, err)
	}

	// Resolve products up front; the stored price is copied into each line.
	type lineaResuelta struct {
		producto *model.Producto
		cantidad int
	}
	lineas := make([]lineaResuelta, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Cantidad <= 0 {
			return nil, fmt.Errorf("cantidad inválida para %q: debe ser un entero positivo", item.Producto)
		}
		p, err := s.productoRepo.FindByNombre(ctx, item.Producto)
		if err != nil {
			return nil, fmt.Errorf("producto %q: %w", item.Producto, err)
		}
		if p.Precio.IsNegative() {
			return nil, fmt.Errorf("producto %q tiene precio negativo", item.Producto)
		}
		lineas = append(lineas, lineaResuelta{producto: p, cantidad: item.Cantidad})
	}

	var factura model.Factura
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		factura = model.Factura{
			ClienteID: cliente.ID,
			Fecha:     time.Now(),
			Total:     decimal.Zero,
		}
		if err := s.repo.CreateTx(ctx, tx, &factura); err != nil {
			return err
		}

		for _, l := range lineas {
			det := model.DetalleFactura{
				FacturaID:  factura.ID,
				ProductoID: l.producto.ID,
				Cantidad:   l.cantidad,
				Precio:     l.producto.Precio,
			}
			if err := s.repo.CreateDetalleTx(ctx, tx, &det); err != nil {
				return err
			}
		}

		return s.repo.RecalcularTotalTx(ctx, tx, factura.ID)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Re-read to pick up the store-computed total and generated subtotals.
	creada, err := s.repo.FindByID(ctx, factura.ID)
	if err != nil {
		return nil, err
	}

	// Async comprobante job — fire & forget, never blocks the caller.
	if s.dispatcher != nil {
		payload := worker.ComprobanteJobPayload{FacturaID: creada.ID}
		if cliente.Correo != nil && *cliente.Correo != "" {
			payload.ClienteCorreo = *cliente.Correo
		}
		_ = s.dispatcher.EnqueueComprobante(ctx, payload)
	}

	return facturaToResponse(creada), nil
}

// Listar returns every invoice joined with its client, most recent first,
// optionally restricted by a case-insensitive substring of the client name.
func (s *facturaService) Listar(ctx context.Context, filter dto.FacturaFilter) ([]dto.FacturaListaItem, error) {
	facturas, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.FacturaListaItem, 0, len(facturas))
	for _, f := range facturas {
		nombre := ""
		if f.Cliente != nil {
			nombre = f.Cliente.Nombre
		}
		items = append(items, dto.FacturaListaItem{
			ID:      f.ID,
			Cliente: nombre,
			Fecha:   f.Fecha.Format("2006-01-02"),
			Total:   f.Total,
		})
	}
	return items, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func facturaToResponse(f *model.Factura) *dto.FacturaResponse {
	resp := &dto.FacturaResponse{
		ID:    f.ID,
		Fecha: f.Fecha.Format("2006-01-02"),
		Total: f.Total,
	}
	if f.Cliente != nil {
		resp.Cliente = f.Cliente.Nombre
	}
	for _, d := range f.Detalles {
		item := dto.FacturaItemResponse{
			Cantidad: d.Cantidad,
			Precio:   d.Precio,
			Subtotal: d.Subtotal,
		}
		if d.Producto != nil {
			item.Producto = d.Producto.Nombre
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}
