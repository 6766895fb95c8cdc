package notifier

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
	Error(format string, v ...interface{})
}

// Client webhook-клиент для уведомлений о событиях бронирования.
// Получатель (email-рассылка, админ-бот) живет за пределами сервиса; сервис знает
// только URL и контракт payload.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр webhook-клиента
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// BookingCreated отправляет уведомление о созданном бронировании
func (c *Client) BookingCreated(ctx context.Context, event BookingCreatedEvent) error {
	return c.post(ctx, "/hooks/booking-created", event)
}

// BookingCancelled отправляет уведомление об отмене бронирования
func (c *Client) BookingCancelled(ctx context.Context, event BookingCancelledEvent) error {
	return c.post(ctx, "/hooks/booking-cancelled", event)
}

// BookingCreatedWithGracefulDegradation отправляет уведомление с graceful degradation.
// Недоступность получателя не должна ронять создание бронирования: любая ошибка
// доставки превращается в ErrServiceDegraded, вызывающий код её только логирует.
func (c *Client) BookingCreatedWithGracefulDegradation(ctx context.Context, event BookingCreatedEvent) error {
	if err := c.BookingCreated(ctx, event); err != nil {
		c.log.Error("Notifier unavailable, applying graceful degradation for booking id=%d: %v", event.BookingID, err)
		return fmt.Errorf("%w: booking_id=%d, error=%v", ErrServiceDegraded, event.BookingID, err)
	}
	c.log.Info("Booking created notification delivered for booking id=%d", event.BookingID)
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to encode payload: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	return nil
}
