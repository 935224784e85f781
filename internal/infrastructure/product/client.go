package product

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ventas-service/internal/application/sales"
	"github.com/tu-usuario/ventas-service/internal/domain"
	"github.com/tu-usuario/ventas-service/internal/domain/entity"
)

// Verificar en tiempo de compilación que Client implementa ProductGateway.
var _ sales.ProductGateway = (*Client)(nil)

// Client adaptador HTTP hacia el microservicio de productos.
// Usa net/http de la librería estándar; el contrato del servicio es JSON camelCase.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el adaptador. baseURL sin slash final, ej. http://localhost:8081/NPH.
// El timeout del cliente es la única cota de tiempo: el orquestador no impone otra.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// productResponse estructura del producto tal como lo expone el servicio remoto.
type productResponse struct {
	ID            int64           `json:"id"`
	Type          string          `json:"type"`
	Description   string          `json:"description"`
	PackageWeight decimal.Decimal `json:"packageWeight"`
	Stock         int             `json:"stock"`
	EntryDate     string          `json:"entryDate"`
	TypeProduct   string          `json:"typeProduct"`
	Status        string          `json:"status"`
}

// GetByID obtiene el snapshot de un producto.
// Cualquier fallo (timeout, respuesta malformada, non-2xx) se normaliza a
// domain.ErrProductNotFound: a esta capa no le es posible distinguir
// "no existe" de "no alcanzable" (limitación heredada y documentada).
func (c *Client) GetByID(ctx context.Context, productID int64) (*entity.Product, error) {
	url := fmt.Sprintf("%s/products/%d", c.baseURL, productID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.ErrProductNotFound
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	var pr productResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, domain.ErrProductNotFound
	}

	return &entity.Product{
		ID:            pr.ID,
		Type:          pr.Type,
		Description:   pr.Description,
		PackageWeight: pr.PackageWeight,
		Stock:         pr.Stock,
		EntryDate:     pr.EntryDate,
		TypeProduct:   pr.TypeProduct,
		Status:        pr.Status,
	}, nil
}

// ReduceStock descuenta stock en el servicio remoto.
// Semántica at-most-once: sin retry ni clave de idempotencia; un fallo puede
// dejar el stock ya descontado sin acción compensatoria en esta capa.
func (c *Client) ReduceStock(ctx context.Context, productID int64, quantity int) error {
	url := fmt.Sprintf("%s/products/reduce-stock/%d?quantity=%d", c.baseURL, productID, quantity)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, nil)
	if err != nil {
		return fmt.Errorf("crear request reduce-stock: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("llamar reduce-stock producto %d: %w", productID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("reduce-stock producto %d: status %d: %s", productID, resp.StatusCode, string(body))
	}
	return nil
}
