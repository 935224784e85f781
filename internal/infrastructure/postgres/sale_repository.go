package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/ventas-service/internal/domain/entity"
	"github.com/tu-usuario/ventas-service/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de venta. El store asigna el ID si viene vacío;
// una vez asignado es inmutable.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sales (id, sale_date, name, ruc, address)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.SaleDate, sale.Name, sale.RUC, sale.Address,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera por ID. Devuelve nil si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `
		SELECT id, sale_date, name, ruc, address
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.SaleDate, &s.Name, &s.RUC, &s.Address,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// Update sobreescribe los campos de la cabecera (el ID nunca cambia).
func (r *SaleRepo) Update(sale *entity.Sale) error {
	query := `
		UPDATE sales SET sale_date = $2, name = $3, ruc = $4, address = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.SaleDate, sale.Name, sale.RUC, sale.Address,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return nil
}

// Delete elimina solo la cabecera; no toca sale_details (sin cascade).
// No es error si la venta no existe.
func (r *SaleRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

// List devuelve todas las cabeceras ordenadas por fecha de venta.
func (r *SaleRepo) List() ([]*entity.Sale, error) {
	query := `
		SELECT id, sale_date, name, ruc, address
		FROM sales ORDER BY sale_date DESC, id`
	return r.list(query)
}

// ListByRUC devuelve las cabeceras de un documento (consulta ligera, sin detalles).
func (r *SaleRepo) ListByRUC(ruc string) ([]*entity.Sale, error) {
	query := `
		SELECT id, sale_date, name, ruc, address
		FROM sales WHERE ruc = $1 ORDER BY sale_date DESC, id`
	return r.list(query, ruc)
}

// ListByName devuelve las cabeceras por nombre de cliente.
func (r *SaleRepo) ListByName(name string) ([]*entity.Sale, error) {
	query := `
		SELECT id, sale_date, name, ruc, address
		FROM sales WHERE name = $1 ORDER BY sale_date DESC, id`
	return r.list(query, name)
}

// ListBySaleDateBetween devuelve las cabeceras con fecha dentro del rango (inclusive).
func (r *SaleRepo) ListBySaleDateBetween(from, to time.Time) ([]*entity.Sale, error) {
	query := `
		SELECT id, sale_date, name, ruc, address
		FROM sales WHERE sale_date BETWEEN $1 AND $2 ORDER BY sale_date, id`
	return r.list(query, from, to)
}

func (r *SaleRepo) list(query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.SaleDate, &s.Name, &s.RUC, &s.Address); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
