// Package apiclient - единственная точка HTTP-доступа к REST API клиники.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// TokenHeader - бэкенд ждёт токен в собственном заголовке, а не в Authorization.
const TokenHeader = "access_token"

// TokenSource достаёт токен текущей сессии из контекста запроса.
type TokenSource func(ctx context.Context) string

type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	logger     *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// New - origin вида "http://host:port", basePath обычно "/api".
// Таймаута у клиента нет: запрос живёт, пока жив контекст вызывающего.
func New(origin, basePath string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(origin, "/") + "/" + strings.Trim(basePath, "/"),
		tokens:     func(context.Context) string { return "" },
		logger:     logger.Named("api_client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Options - метод и тело запроса. Body: nil, JSONBody или *Form.
type Options struct {
	Method string
	Body   any
}

// Request выполняет запрос и разбирает JSON-ответ в out (если out не nil).
// Тело, которое не является JSON, считается пустым объектом.
// Ответ вне 2xx возвращается как *APIError с сообщением сервера.
func (c *Client) Request(ctx context.Context, path string, opts Options, requiresAuth bool, out any) error {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	reqBody, contentType, err := encodeBody(opts.Body)
	if err != nil {
		return fmt.Errorf("ошибка подготовки тела запроса %s %s: %w", method, path, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	if requiresAuth {
		if token := c.tokens(ctx); token != "" {
			req.Header.Set(TokenHeader, token)
		} else {
			c.logger.Warn("Запрос требует авторизации, но токена нет", zap.String("method", method), zap.String("path", path))
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ошибка выполнения запроса %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа %s %s: %w", method, path, err)
	}
	if !json.Valid(raw) {
		raw = []byte("{}")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(resp.StatusCode, serverMessage(raw))
		c.logger.Debug("Бэкенд вернул ошибку",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			// Форма ответа не совпала - отдаём то, что успели разобрать.
			c.logger.Warn("Не удалось разобрать ответ бэкенда", zap.String("path", path), zap.Error(err))
		}
	}
	return nil
}

func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case *Form:
		return b.encode()
	case JSONBody:
		raw, err := json.Marshal(b.Value)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(raw), "application/json", nil
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(raw), "application/json", nil
	}
}

func serverMessage(raw []byte) string {
	var payload struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || len(payload.Message) == 0 {
		return ""
	}
	var msg string
	if err := json.Unmarshal(payload.Message, &msg); err == nil {
		return msg
	}
	// NestJS-валидация отдаёт массив строк
	var msgs []string
	if err := json.Unmarshal(payload.Message, &msgs); err == nil {
		return strings.Join(msgs, "; ")
	}
	return ""
}

// Envelope - общий конверт ответов бэкенда.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func fetch[T any](ctx context.Context, c *Client, path string, requiresAuth bool) (T, error) {
	var env Envelope[T]
	err := c.Request(ctx, path, Options{}, requiresAuth, &env)
	return env.Data, err
}

func send(ctx context.Context, c *Client, method, path string, body any, requiresAuth bool) error {
	return c.Request(ctx, path, Options{Method: method, Body: body}, requiresAuth, nil)
}
