package clientservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// Client клиент для работы с ClientService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента ClientService.
// Пустой baseURL отключает интеграцию: все запросы сразу деградируют.
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetClient получает профиль клиента тенанта
func (c *Client) GetClient(ctx context.Context, tenantID, clientID int64) (*domain.Client, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: base url is not configured", ErrInternal)
	}

	url := fmt.Sprintf("%s/internal/tenants/%d/clients/%d", c.baseURL, tenantID, clientID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrClientNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return profile.ToDomain(), nil
}

// GetClientWithGracefulDegradation получает профиль клиента с graceful degradation.
// ErrClientNotFound пробрасывается как есть; любые другие ошибки превращаются
// в ErrServiceDegraded, и вызывающий считает цену без скидки.
func (c *Client) GetClientWithGracefulDegradation(ctx context.Context, tenantID, clientID int64) (*domain.Client, error) {
	client, err := c.GetClient(ctx, tenantID, clientID)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			c.log.Info("No client profile for tenant_id=%d, client_id=%d", tenantID, clientID)
			return nil, err
		}

		c.log.Error("ClientService unavailable, applying graceful degradation for client_id=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: client_id=%d, error=%v", ErrServiceDegraded, clientID, err)
	}

	return client, nil
}
