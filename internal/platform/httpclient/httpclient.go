package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pet-community-client/internal/platform/logger"
	"pet-community-client/internal/ports/auth"
)

const (
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 1 << 20 // 1MB
)

// Result es el resultado uniforme de toda llamada al backend.
// Status 0 = fallo de red (no hubo respuesta). Nunca se usa error de Go
// para statuses HTTP: el server decide, el caller mira Status/Err.
type Result struct {
	Status int
	Data   json.RawMessage // body crudo en 2xx
	Err    string          // mensaje en fallo (red o non-2xx)
}

// OK reporta si la respuesta fue 2xx.
func (r Result) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Client envuelve *http.Client con auth bearer y base path.
// No tiene lógica de dominio; los record services viven encima.
type Client struct {
	http    *http.Client
	baseURL string
	session auth.Session // puede ser nil (llamadas anónimas)
	log     logger.Logger
}

type Config struct {
	BaseURL string
	Timeout time.Duration

	// Session aporta el bearer token. Si falta token la llamada sale igual,
	// sin header; la autorización la decide el server.
	Session auth.Session

	Logger logger.Logger

	// Transport opcional (p.ej. para tests).
	Transport http.RoundTripper
}

func New(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, errors.New("httpclient: base url required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("httpclient: invalid base url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	lg := cfg.Logger
	if lg == nil {
		lg = logger.Nop()
	}

	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: cfg.Transport,
		},
		baseURL: strings.TrimRight(base, "/"),
		session: cfg.Session,
		log:     lg,
	}, nil
}

func (c *Client) Get(ctx context.Context, path string) (Result, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) (Result, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) (Result, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) (Result, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

// do ejecuta la llamada. El error de retorno es solo para errores de
// programación (path vacío, body no serializable); todo lo demás va en Result.
func (c *Client) do(ctx context.Context, method, path string, body any) (Result, error) {
	if c == nil || c.http == nil {
		return Result{}, errors.New("httpclient: nil client")
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("httpclient: empty path")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return Result{}, fmt.Errorf("httpclient: marshal json: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return Result{}, fmt.Errorf("httpclient: new request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != nil {
		if token, ok := c.session.Token(ctx); ok && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Sin respuesta: red caída, timeout, DNS. Status 0 por contrato.
		return Result{Status: 0, Err: "network error: " + err.Error()}, nil
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))

	if resp.StatusCode == http.StatusUnauthorized {
		// Único side effect cross-cutting del transport: sesión afuera.
		c.invalidateSession(ctx)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{
			Status: resp.StatusCode,
			Err:    errorMessage(raw, resp.StatusCode),
		}, nil
	}

	return Result{Status: resp.StatusCode, Data: raw}, nil
}

func (c *Client) invalidateSession(ctx context.Context) {
	if c.session == nil {
		return
	}
	if err := c.session.Clear(ctx); err != nil {
		c.log.Warn("session clear failed after 401", map[string]any{"err": err.Error()})
		return
	}
	c.log.Info("session invalidated after 401", nil)
}

// errorMessage intenta sacar un mensaje legible del body de error.
// Los backends del proyecto usan {"message": ...} o {"error": ...}, según revisión.
func errorMessage(raw []byte, status int) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return fmt.Sprintf("http error: status=%d", status)
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if m := strings.TrimSpace(payload.Message); m != "" {
			return m
		}
		if m := strings.TrimSpace(payload.Error); m != "" {
			return m
		}
	}
	return trimmed
}
