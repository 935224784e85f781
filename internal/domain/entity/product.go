package entity

import "github.com/shopspring/decimal"

// Product es un snapshot de solo lectura del microservicio de productos.
// El servicio de ventas nunca lo muta directamente; solo vía reduce-stock.
type Product struct {
	ID            int64
	Type          string
	Description   string
	PackageWeight decimal.Decimal
	Stock         int
	EntryDate     string
	TypeProduct   string
	Status        string
}
