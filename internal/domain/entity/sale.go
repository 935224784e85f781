package entity

import "time"

// Sale representa la cabecera de una venta: cliente, documento (RUC) y fecha.
// El ID lo asigna el store al crear y es inmutable después.
type Sale struct {
	ID       string
	SaleDate time.Time // solo fecha (sin hora)
	Name     string
	RUC      string
	Address  string
}
