package smsgate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с провайдером SMS сообщений
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента SMS провайдера
func NewClient(baseURL, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendMessage отправляет SMS сообщение на указанный номер.
//
// Классификация ошибок:
//   - 2xx - сообщение принято провайдером, возвращается ответ с ID сообщения
//   - 4xx - провайдер отклонил сообщение (ErrRejected), причина из тела ответа
//   - 5xx, сетевые ошибки, таймауты - провайдер недоступен (ErrServiceDegraded)
//
// Любая ошибка возвращается вызывающему как значение, паники за границу
// клиента не выходят.
func (c *Client) SendMessage(ctx context.Context, to, text string) (*MessageResponse, error) {
	url := fmt.Sprintf("%s/v1/messages", c.baseURL)

	payload, err := json.Marshal(SendMessageRequest{To: to, Text: text})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Сетевая ошибка или таймаут - провайдер недоступен
		c.log.Error("SMSGate unavailable, to=%s: %v", to, err)
		return nil, fmt.Errorf("%w: %v", ErrServiceDegraded, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// Продолжаем обработку
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, fmt.Errorf("%w: %s", ErrRejected, c.rejectionReason(resp.Body))
	default:
		body, _ := io.ReadAll(resp.Body)
		c.log.Error("SMSGate returned %d, to=%s: %s", resp.StatusCode, to, string(body))
		return nil, fmt.Errorf("%w: unexpected status code %d", ErrServiceDegraded, resp.StatusCode)
	}

	// Парсим ответ
	var message MessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&message); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &message, nil
}

// rejectionReason достаёт человекочитаемую причину отказа из тела ответа
func (c *Client) rejectionReason(body io.Reader) string {
	var errResp ErrorResponse
	if err := json.NewDecoder(body).Decode(&errResp); err != nil || errResp.Message == "" {
		return "message rejected by provider"
	}
	return errResp.Message
}
