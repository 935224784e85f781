package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ventas-service/internal/application/dto"
	"github.com/tu-usuario/ventas-service/internal/application/sales"
	"github.com/tu-usuario/ventas-service/internal/domain"
)

// SaleHandler maneja las peticiones HTTP para ventas.
type SaleHandler struct {
	uc *sales.UseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.UseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create godoc
// @Summary      Crear venta con detalles
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaleRequest  true  "Venta con líneas"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.SaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sale_date, name y ruc son requeridos; cada línea necesita product_id y packages positivos"})
		}
		if errors.Is(err, domain.ErrProductNotFound) {
			// La venta pudo quedar parcialmente escrita (cabecera y líneas
			// hermanas); aun así la operación completa se reporta fallida.
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// FindAll godoc
// @Summary      Listar ventas con detalles
// @Tags         sales
// @Produce      json
// @Success      200  {array}  dto.SaleResponse
// @Router       /sales [get]
func (h *SaleHandler) FindAll(c *fiber.Ctx) error {
	out, err := h.uc.FindAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta por ID con detalles
// @Tags         sales
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar venta (replace completo de líneas)
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.SaleRequest  true  "Venta con líneas ya calculadas"
// @Success      200   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /sales/{id} [put]
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.SaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sale_date, name y ruc son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar venta (solo cabecera, sin cascade)
// @Tags         sales
// @Param        id  path  string  true  "ID de la venta"
// @Success      204
// @Router       /sales/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// FindByRUC godoc
// @Summary      Buscar ventas por documento (solo cabeceras)
// @Tags         sales
// @Produce      json
// @Param        ruc  path  string  true  "RUC del cliente"
// @Success      200  {array}  dto.SaleResponse
// @Router       /sales/doc/{ruc} [get]
func (h *SaleHandler) FindByRUC(c *fiber.Ctx) error {
	ruc := c.Params("ruc")
	if ruc == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ruc es requerido"})
	}
	out, err := h.uc.FindByRUC(c.Context(), ruc)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// FindByName godoc
// @Summary      Buscar ventas por nombre de cliente (solo cabeceras)
// @Tags         sales
// @Produce      json
// @Param        name  path  string  true  "Nombre del cliente"
// @Success      200   {array}  dto.SaleResponse
// @Router       /sales/name/{name} [get]
func (h *SaleHandler) FindByName(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.uc.FindByName(c.Context(), name)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// FindByDateRange godoc
// @Summary      Buscar ventas por rango de fechas (solo cabeceras)
// @Tags         sales
// @Produce      json
// @Param        from  query  string  true  "Fecha inicial YYYY-MM-DD"
// @Param        to    query  string  true  "Fecha final YYYY-MM-DD"
// @Success      200   {array}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /sales/range [get]
func (h *SaleHandler) FindByDateRange(c *fiber.Ctx) error {
	from, err1 := time.Parse("2006-01-02", c.Query("from"))
	to, err2 := time.Parse("2006-01-02", c.Query("to"))
	if err1 != nil || err2 != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from y to son requeridos con formato YYYY-MM-DD"})
	}
	out, err := h.uc.FindByDateRange(c.Context(), from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
