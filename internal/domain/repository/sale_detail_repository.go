package repository

import "github.com/tu-usuario/ventas-service/internal/domain/entity"

// SaleDetailRepository define el puerto de persistencia para las líneas de venta.
type SaleDetailRepository interface {
	// Create persiste una línea; asigna el ID si viene vacío.
	Create(detail *entity.SaleDetail) error
	ListBySaleID(saleID string) ([]*entity.SaleDetail, error)
	// DeleteBySaleID borra todas las líneas de una venta (usado por el replace de update).
	DeleteBySaleID(saleID string) error
}
