package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/tu-usuario/ventas-service/internal/application/dto"
	"github.com/tu-usuario/ventas-service/internal/domain"
	"github.com/tu-usuario/ventas-service/internal/domain/entity"
	"github.com/tu-usuario/ventas-service/internal/domain/repository"
)

// saleDateLayout formato de fecha de venta (solo fecha).
const saleDateLayout = "2006-01-02"

// UseCase orquesta la creación y actualización de ventas contra el store local
// y el microservicio de productos. Sin estado mutable compartido: cada llamada
// es autocontenida sobre los colaboradores inyectados.
type UseCase struct {
	sales    repository.SaleRepository
	details  repository.SaleDetailRepository
	products ProductGateway
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	sales repository.SaleRepository,
	details repository.SaleDetailRepository,
	products ProductGateway,
) *UseCase {
	return &UseCase{
		sales:    sales,
		details:  details,
		products: products,
	}
}

// Create crea la venta: primero la cabecera y después, por cada línea en
// paralelo, resuelve el producto, calcula totales, descuenta stock y persiste
// el detalle. Si cualquier línea falla, la llamada completa reporta error;
// la cabecera y las líneas hermanas ya escritas NO se revierten (no hay
// transacción entre el store local y el servicio remoto).
func (uc *UseCase) Create(ctx context.Context, in dto.SaleRequest) (*dto.SaleResponse, error) {
	saleDate, err := uc.validateHeader(in)
	if err != nil {
		return nil, err
	}
	for _, d := range in.Details {
		if d.ProductID <= 0 || d.Packages <= 0 || d.PricePerKg.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	sale := &entity.Sale{
		SaleDate: saleDate,
		Name:     in.Name,
		RUC:      in.RUC,
		Address:  in.Address,
	}
	// Si la cabecera no se puede escribir, se aborta sin llamadas remotas.
	if err := uc.sales.Create(sale); err != nil {
		return nil, err
	}

	// Fan-out por línea: cada pipeline opera sobre su propio detalle y escribe
	// en su propia posición del slice; el único dato compartido es sale.ID,
	// de solo lectura. No se propaga señal de cancelación: las hermanas en
	// vuelo corren hasta el final y la barrera decide con todas asentadas.
	computed := make([]*entity.SaleDetail, len(in.Details))
	var g errgroup.Group
	for i := range in.Details {
		i := i
		item := in.Details[i]
		g.Go(func() error {
			product, err := uc.products.GetByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			weight := product.PackageWeight
			totalWeight := weight.Mul(decimal.NewFromInt(int64(item.Packages)))
			totalPrice := totalWeight.Mul(item.PricePerKg)

			// El detalle no se persiste hasta que el descuento de stock
			// haya sido confirmado.
			if err := uc.products.ReduceStock(ctx, item.ProductID, item.Packages); err != nil {
				return err
			}

			detail := &entity.SaleDetail{
				SaleID:      sale.ID,
				ProductID:   item.ProductID,
				Weight:      weight,
				Packages:    item.Packages,
				TotalWeight: totalWeight,
				PricePerKg:  item.PricePerKg,
				TotalPrice:  totalPrice,
			}
			if err := uc.details.Create(detail); err != nil {
				return err
			}
			computed[i] = detail
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// Nunca se responde 2xx con una venta truncada: el primer fallo se
		// reporta aunque la cabecera ya esté persistida.
		return nil, err
	}

	return toResponse(sale, computed), nil
}

// Update reemplaza la venta completa: sobreescribe la cabecera, borra TODAS
// las líneas existentes e inserta tal cual la lista recibida. A diferencia de
// Create, aquí se confía en los totales calculados por el caller: no se
// vuelve a resolver el producto ni se descuenta stock (asimetría intencional
// del sistema de origen, mantenida a propósito).
func (uc *UseCase) Update(ctx context.Context, id string, in dto.SaleRequest) (*dto.SaleResponse, error) {
	existing, err := uc.sales.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	saleDate, err := uc.validateHeader(in)
	if err != nil {
		return nil, err
	}

	existing.SaleDate = saleDate
	existing.Name = in.Name
	existing.RUC = in.RUC
	existing.Address = in.Address
	if err := uc.sales.Update(existing); err != nil {
		return nil, err
	}

	if err := uc.details.DeleteBySaleID(existing.ID); err != nil {
		return nil, err
	}
	replaced := make([]*entity.SaleDetail, 0, len(in.Details))
	for _, item := range in.Details {
		detail := &entity.SaleDetail{
			SaleID:      existing.ID,
			ProductID:   item.ProductID,
			Weight:      item.Weight,
			Packages:    item.Packages,
			TotalWeight: item.TotalWeight,
			PricePerKg:  item.PricePerKg,
			TotalPrice:  item.TotalPrice,
		}
		if err := uc.details.Create(detail); err != nil {
			return nil, err
		}
		replaced = append(replaced, detail)
	}

	return toResponse(existing, replaced), nil
}

// GetByID arma la vista compuesta: cabecera más sus líneas.
// Devuelve nil (sin error) si la venta no existe.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.sales.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, nil
	}
	details, err := uc.details.ListBySaleID(sale.ID)
	if err != nil {
		return nil, err
	}
	return toResponse(sale, details), nil
}

// FindAll devuelve todas las ventas, cada una armada de forma independiente.
// Patrón N+1 asumido para la escala objetivo.
func (uc *UseCase) FindAll(ctx context.Context) ([]dto.SaleResponse, error) {
	sales, err := uc.sales.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, sale := range sales {
		details, err := uc.details.ListBySaleID(sale.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, *toResponse(sale, details))
	}
	return out, nil
}

// FindByRUC devuelve solo cabeceras (sin detalles) para búsqueda por documento.
func (uc *UseCase) FindByRUC(ctx context.Context, ruc string) ([]dto.SaleResponse, error) {
	sales, err := uc.sales.ListByRUC(ruc)
	if err != nil {
		return nil, err
	}
	return toHeaderViews(sales), nil
}

// FindByName devuelve solo cabeceras que coinciden con el nombre del cliente.
func (uc *UseCase) FindByName(ctx context.Context, name string) ([]dto.SaleResponse, error) {
	sales, err := uc.sales.ListByName(name)
	if err != nil {
		return nil, err
	}
	return toHeaderViews(sales), nil
}

// FindByDateRange devuelve solo cabeceras con fecha de venta dentro del rango.
func (uc *UseCase) FindByDateRange(ctx context.Context, from, to time.Time) ([]dto.SaleResponse, error) {
	sales, err := uc.sales.ListBySaleDateBetween(from, to)
	if err != nil {
		return nil, err
	}
	return toHeaderViews(sales), nil
}

// Delete elimina solo la cabecera. Los detalles NO se cascadean: quedan
// huérfanos (comportamiento documentado del sistema de origen, no se "arregla").
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.sales.Delete(id)
}

// validateHeader valida los campos obligatorios de la cabecera antes de
// cualquier escritura y devuelve la fecha parseada.
func (uc *UseCase) validateHeader(in dto.SaleRequest) (time.Time, error) {
	if in.Name == "" || in.RUC == "" || in.SaleDate == "" {
		return time.Time{}, domain.ErrInvalidInput
	}
	saleDate, err := time.Parse(saleDateLayout, in.SaleDate)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return saleDate, nil
}

func toResponse(sale *entity.Sale, details []*entity.SaleDetail) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:       sale.ID,
		SaleDate: sale.SaleDate.Format(saleDateLayout),
		Name:     sale.Name,
		RUC:      sale.RUC,
		Address:  sale.Address,
		Details:  make([]dto.SaleDetailResponse, 0, len(details)),
	}
	for _, d := range details {
		if d == nil {
			continue
		}
		resp.Details = append(resp.Details, dto.SaleDetailResponse{
			ProductID:   d.ProductID,
			Weight:      d.Weight,
			Packages:    d.Packages,
			TotalWeight: d.TotalWeight,
			PricePerKg:  d.PricePerKg,
			TotalPrice:  d.TotalPrice,
		})
	}
	return resp
}

func toHeaderViews(sales []*entity.Sale) []dto.SaleResponse {
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, sale := range sales {
		out = append(out, dto.SaleResponse{
			ID:       sale.ID,
			SaleDate: sale.SaleDate.Format(saleDateLayout),
			Name:     sale.Name,
			RUC:      sale.RUC,
			Address:  sale.Address,
			// Details omitido a propósito: variante ligera de consulta
		})
	}
	return out
}
