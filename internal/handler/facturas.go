package handler

import (
	"errors"
	"net/http"

	"github.com/Jess-Moreno/easyfact-one-o-prototipo-easyfact/internal/apierror"
	"github.com/Jess-Moreno/easyfact-one-o-prototipo-easyfact/internal/dto"
	"github.com/Jess-Moreno/easyfact-one-o-prototipo-easyfact/internal/repository"
	"github.com/Jess-Moreno/easyfact-one-o-prototipo-easyfact/internal/service"

	"github.com/gin-gonic/gin"
)

type FacturasHandler struct{ svc service.FacturaService }

func NewFacturasHandler(svc service.FacturaService) *FacturasHandler {
	return &FacturasHandler{svc: svc}
}

// Registrar godoc
// @Summary Registrar una factura (cliente y productos por nombre)
// @Tags facturas
// @Accept json
// @Produce json
// @Success 201 {object} dto.FacturaResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/facturas [post]
func (h *FacturasHandler) Registrar(c *gin.Context) {
	var req dto.CrearFacturaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		// An unresolved name is a validation failure, not a server fault:
		// nothing was written to the store.
		if errors.Is(err, repository.ErrNoEncontrado) {
			c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
			return
		}
		if errors.Is(err, repository.ErrSinConexion) {
			c.JSON(http.StatusServiceUnavailable, apierror.New("No hay conexión con la base de datos"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Listar facturas con nombre de cliente, más recientes primero
// @Tags facturas
// @Produce json
// @Param cliente query string false "Filtro por subcadena del nombre del cliente"
// @Success 200 {array} dto.FacturaListaItem
// @Router /v1/facturas [get]
func (h *FacturasHandler) Listar(c *gin.Context) {
	var filter dto.FacturaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, repository.ErrSinConexion) {
			c.JSON(http.StatusServiceUnavailable, apierror.New("No hay conexión con la base de datos"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar facturas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
