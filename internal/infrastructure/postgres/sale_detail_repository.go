package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tu-usuario/ventas-service/internal/domain/entity"
	"github.com/tu-usuario/ventas-service/internal/domain/repository"
)

var _ repository.SaleDetailRepository = (*SaleDetailRepo)(nil)

// SaleDetailRepo implementación del puerto SaleDetailRepository sobre PostgreSQL (usable con pool o tx).
type SaleDetailRepo struct {
	q Querier
}

// NewSaleDetailRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleDetailRepository(q Querier) *SaleDetailRepo {
	return &SaleDetailRepo{q: q}
}

// Create persiste una línea de venta. El store asigna el ID si viene vacío.
// sale_id es NOT NULL pero sin constraint FK: borrar la venta deja las líneas huérfanas.
func (r *SaleDetailRepo) Create(detail *entity.SaleDetail) error {
	if detail.ID == "" {
		detail.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sale_details (id, sale_id, product_id, weight, packages, total_weight, price_per_kg, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		detail.ID, detail.SaleID, detail.ProductID, detail.Weight,
		detail.Packages, detail.TotalWeight, detail.PricePerKg, detail.TotalPrice,
	)
	if err != nil {
		return fmt.Errorf("insert sale detail: %w", err)
	}
	return nil
}

// ListBySaleID devuelve las líneas de una venta en orden de inserción.
func (r *SaleDetailRepo) ListBySaleID(saleID string) ([]*entity.SaleDetail, error) {
	query := `
		SELECT id, sale_id, product_id, weight, packages, total_weight, price_per_kg, total_price
		FROM sale_details WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale details: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleDetail
	for rows.Next() {
		var d entity.SaleDetail
		if err := rows.Scan(&d.ID, &d.SaleID, &d.ProductID, &d.Weight,
			&d.Packages, &d.TotalWeight, &d.PricePerKg, &d.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan sale detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// DeleteBySaleID borra todas las líneas de una venta (replace completo en update).
func (r *SaleDetailRepo) DeleteBySaleID(saleID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sale_details WHERE sale_id = $1`, saleID)
	if err != nil {
		return fmt.Errorf("delete sale details: %w", err)
	}
	return nil
}
