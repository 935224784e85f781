package repository

import (
	"time"

	"github.com/tu-usuario/ventas-service/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para la cabecera de venta (DIP).
type SaleRepository interface {
	// Create persiste la cabecera; asigna el ID si viene vacío.
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	Update(sale *entity.Sale) error
	// Delete elimina solo la cabecera; no cascadea a los detalles.
	Delete(id string) error
	List() ([]*entity.Sale, error)
	ListByRUC(ruc string) ([]*entity.Sale, error)
	ListByName(name string) ([]*entity.Sale, error)
	ListBySaleDateBetween(from, to time.Time) ([]*entity.Sale, error)
}
