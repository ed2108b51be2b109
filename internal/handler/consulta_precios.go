package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Jess-Moreno/easyfact-one-o-prototipo-easyfact/internal/apierror"
	"github.com/Jess-Moreno/easyfact-one-o-prototipo-easyfact/internal/dto"
	"github.com/Jess-Moreno/easyfact-one-o-prototipo-easyfact/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const precioCacheTTL = 4 * time.Hour

// ConsultaPreciosHandler serves the public price check endpoint: an exact
// product-name lookup backed by a Redis cache. Read-only, no side effects.
type ConsultaPreciosHandler struct {
	repo repository.ProductoRepository
	rdb  *redis.Client
}

func NewConsultaPreciosHandler(repo repository.ProductoRepository, rdb *redis.Client) *ConsultaPreciosHandler {
	return &ConsultaPreciosHandler{repo: repo, rdb: rdb}
}

// GetPrecioPorNombre godoc
// @Summary Consulta de precio por nombre exacto de producto
// @Tags precio
// @Produce json
// @Param nombre path string true "Nombre del producto"
// @Success 200 {object} dto.ConsultaPrecioResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/precio/{nombre} [get]
func (h *ConsultaPreciosHandler) GetPrecioPorNombre(c *gin.Context) {
	nombre := c.Param("nombre")
	ctx := c.Request.Context()
	cacheKey := "precio:" + nombre

	// 1. Try Redis cache
	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.ConsultaPrecioResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// 2. Cache miss — query DB
	producto, err := h.repo.FindByNombre(ctx, nombre)
	if err != nil {
		if errors.Is(err, repository.ErrNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New("Producto no encontrado"))
			return
		}
		if errors.Is(err, repository.ErrSinConexion) {
			c.JSON(http.StatusServiceUnavailable, apierror.New("No hay conexión con la base de datos"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar el precio"))
		return
	}

	resp := dto.ConsultaPrecioResponse{
		ID:     producto.ID,
		Nombre: producto.Nombre,
		Precio: producto.Precio,
		Stock:  producto.Stock,
	}

	// 3. Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, precioCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
