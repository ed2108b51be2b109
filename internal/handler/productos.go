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

type ProductosHandler struct{ svc service.ProductoService }

func NewProductosHandler(svc service.ProductoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

func (h *ProductosHandler) Registrar(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrSinConexion) {
			c.JSON(http.StatusServiceUnavailable, apierror.New("No hay conexión con la base de datos"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		if errors.Is(err, repository.ErrSinConexion) {
			c.JSON(http.StatusServiceUnavailable, apierror.New("No hay conexión con la base de datos"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar productos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
