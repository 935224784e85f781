package entity

import "github.com/shopspring/decimal"

// SaleDetail representa una línea de una venta.
// Weight se copia del producto al momento de crear la venta (no se vuelve a consultar).
// TotalWeight = Weight × Packages; TotalPrice = TotalWeight × PricePerKg.
type SaleDetail struct {
	ID          string
	SaleID      string // id de la venta padre; nunca nulo una vez persistido (sin constraint en el esquema)
	ProductID   int64  // referencia al catálogo externo de productos
	Weight      decimal.Decimal
	Packages    int
	TotalWeight decimal.Decimal
	PricePerKg  decimal.Decimal
	TotalPrice  decimal.Decimal
}
