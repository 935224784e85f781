package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ventas-service/internal/application/sales"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SaleUC *sales.UseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	saleHandler := NewSaleHandler(deps.SaleUC)

	salesGroup := app.Group("/sales")
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.FindAll)
	// Rutas literales antes de /:id para que Fiber no las capture como parámetro
	salesGroup.Get("/range", saleHandler.FindByDateRange)
	salesGroup.Get("/doc/:ruc", saleHandler.FindByRUC)
	salesGroup.Get("/name/:name", saleHandler.FindByName)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Put("/:id", saleHandler.Update)
	salesGroup.Delete("/:id", saleHandler.Delete)
}
