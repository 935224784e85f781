package dto

import "github.com/shopspring/decimal"

// SaleDetailRequest línea de venta en la petición.
// En create solo se usan product_id, packages y price_per_kg (weight y totales
// se calculan contra el catálogo). En update se insertan todos los campos tal
// cual vienen: el caller es responsable de los totales.
type SaleDetailRequest struct {
	ProductID   int64           `json:"product_id"`
	Weight      decimal.Decimal `json:"weight"`
	Packages    int             `json:"packages"`
	TotalWeight decimal.Decimal `json:"total_weight"`
	PricePerKg  decimal.Decimal `json:"price_per_kg"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// SaleRequest entrada para crear o actualizar una venta con sus líneas.
type SaleRequest struct {
	SaleDate string              `json:"sale_date" validate:"required"` // YYYY-MM-DD
	Name     string              `json:"name" validate:"required,min=1,max=200"`
	RUC      string              `json:"ruc" validate:"required,min=1,max=20"`
	Address  string              `json:"address"`
	Details  []SaleDetailRequest `json:"details"`
}

// SaleDetailResponse línea de venta en la respuesta, con los totales calculados.
type SaleDetailResponse struct {
	ProductID   int64           `json:"product_id"`
	Weight      decimal.Decimal `json:"weight"`
	Packages    int             `json:"packages"`
	TotalWeight decimal.Decimal `json:"total_weight"`
	PricePerKg  decimal.Decimal `json:"price_per_kg"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// SaleResponse vista compuesta de una venta: cabecera más líneas ordenadas.
// Se arma en cada lectura; nunca se persiste como estructura unida.
// Details va omitido en las consultas ligeras (por RUC, nombre o rango de fechas).
type SaleResponse struct {
	ID       string               `json:"id"`
	SaleDate string               `json:"sale_date"`
	Name     string               `json:"name"`
	RUC      string               `json:"ruc"`
	Address  string               `json:"address"`
	Details  []SaleDetailResponse `json:"details,omitempty"`
}
