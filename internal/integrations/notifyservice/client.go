package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с NotifyService
// Доставка и повторные попытки — ответственность NotifyService; этот клиент
// только передает событие (fire-and-forget с точки зрения бизнес-логики)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotifyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendSlotOffered отправляет уведомление о предложении слота из листа ожидания
func (c *Client) SendSlotOffered(ctx context.Context, n *SlotOfferedNotification) error {
	url := fmt.Sprintf("%s/internal/notifications/waitlist-slot-offered", c.baseURL)
	return c.postJSON(ctx, url, n)
}

// SendBookingCancelled отправляет уведомление об отмене бронирования
func (c *Client) SendBookingCancelled(ctx context.Context, n *BookingCancelledNotification) error {
	url := fmt.Sprintf("%s/internal/notifications/booking-cancelled", c.baseURL)
	return c.postJSON(ctx, url, n)
}

// postJSON выполняет POST запрос с JSON телом
func (c *Client) postJSON(ctx context.Context, url string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	return nil
}
