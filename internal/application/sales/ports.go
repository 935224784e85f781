package sales

import (
	"context"

	"github.com/tu-usuario/ventas-service/internal/domain/entity"
)

// ProductGateway puerto hacia el microservicio de productos.
// GetByID normaliza cualquier fallo (inexistente, timeout, respuesta inválida)
// a domain.ErrProductNotFound: a este nivel no se distingue "no existe" de
// "no alcanzable". ReduceStock es at-most-once: sin retry ni compensación.
type ProductGateway interface {
	GetByID(ctx context.Context, productID int64) (*entity.Product, error)
	ReduceStock(ctx context.Context, productID int64, quantity int) error
}
