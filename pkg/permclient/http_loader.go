package permclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Agenda-api/pkg/modules"
)

// Valores por defecto de la política de reintentos.
const (
	DefaultAttemptTimeout  = 5 * time.Second
	DefaultMaxTries        = 3
	DefaultInitialInterval = 100 * time.Millisecond
	DefaultMaxElapsed      = 15 * time.Second
)

var (
	// ErrCompanyNotFound el servidor respondió 404.
	ErrCompanyNotFound = errors.New("empresa sin permisos resolubles")
	// ErrUnavailable el servidor no respondió o respondió 5xx tras agotar reintentos.
	ErrUnavailable = errors.New("permisos no disponibles")
)

// StatusError respuesta HTTP no exitosa.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("permissions endpoint: status %d", e.Code)
	}
	return fmt.Sprintf("permissions endpoint: status %d: %s", e.Code, e.Message)
}

// HTTPLoader consulta GET {BaseURL}/api/permissions/{companyId}.
type HTTPLoader struct {
	baseURL         string
	token           func() string
	client          *http.Client
	attemptTimeout  time.Duration
	maxTries        uint
	initialInterval time.Duration
	maxElapsed      time.Duration
	log             zerolog.Logger
}

// LoaderOption configura un HTTPLoader.
type LoaderOption func(*HTTPLoader)

// WithToken token bearer fijo.
func WithToken(token string) LoaderOption {
	return func(l *HTTPLoader) { l.token = func() string { return token } }
}

// WithTokenSource obtiene el token en cada intento (tokens que rotan).
func WithTokenSource(fn func() string) LoaderOption {
	return func(l *HTTPLoader) { l.token = fn }
}

// WithHTTPClient reemplaza el cliente HTTP.
func WithHTTPClient(c *http.Client) LoaderOption {
	return func(l *HTTPLoader) { l.client = c }
}

// WithAttemptTimeout límite de cada intento.
func WithAttemptTimeout(d time.Duration) LoaderOption {
	return func(l *HTTPLoader) {
		if d > 0 {
			l.attemptTimeout = d
		}
	}
}

// WithRetry ajusta intentos, intervalo inicial y tiempo total máximo.
func WithRetry(maxTries uint, initial, maxElapsed time.Duration) LoaderOption {
	return func(l *HTTPLoader) {
		if maxTries > 0 {
			l.maxTries = maxTries
		}
		if initial > 0 {
			l.initialInterval = initial
		}
		if maxElapsed > 0 {
			l.maxElapsed = maxElapsed
		}
	}
}

// WithLoaderLogger logger para los reintentos.
func WithLoaderLogger(log zerolog.Logger) LoaderOption {
	return func(l *HTTPLoader) { l.log = log }
}

// NewHTTPLoader crea el loader contra baseURL (ej. http://localhost:8080).
func NewHTTPLoader(baseURL string, opts ...LoaderOption) *HTTPLoader {
	l := &HTTPLoader{
		baseURL:         strings.TrimRight(baseURL, "/"),
		token:           func() string { return "" },
		client:          &http.Client{},
		attemptTimeout:  DefaultAttemptTimeout,
		maxTries:        DefaultMaxTries,
		initialInterval: DefaultInitialInterval,
		maxElapsed:      DefaultMaxElapsed,
		log:             zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load implementa Loader. Los 4xx no se reintentan; 5xx y errores de red sí,
// con backoff exponencial.
func (l *HTTPLoader) Load(ctx context.Context, companyID string) (modules.Permissions, error) {
	if strings.TrimSpace(companyID) == "" {
		return modules.Permissions{}, &StatusError{Code: http.StatusBadRequest, Message: "company id vacío"}
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = l.initialInterval

	attempt := 0
	p, err := backoff.Retry(ctx, func() (modules.Permissions, error) {
		attempt++
		return l.attempt(ctx, companyID)
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(l.maxTries),
		backoff.WithMaxElapsedTime(l.maxElapsed),
		backoff.WithNotify(func(err error, next time.Duration) {
			l.log.Debug().Err(err).Str("company_id", companyID).Int("attempt", attempt).
				Dur("next", next).Msg("reintentando carga de permisos")
		}),
	)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			switch {
			case se.Code == http.StatusNotFound:
				return modules.Permissions{}, fmt.Errorf("%w: %w", ErrCompanyNotFound, err)
			case se.Code < 500:
				return modules.Permissions{}, err
			}
		}
		return modules.Permissions{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return p, nil
}

func (l *HTTPLoader) attempt(ctx context.Context, companyID string) (modules.Permissions, error) {
	ctx, cancel := context.WithTimeout(ctx, l.attemptTimeout)
	defer cancel()

	endpoint := l.baseURL + "/api/permissions/" + url.PathEscape(companyID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return modules.Permissions{}, backoff.Permanent(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if tok := l.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return modules.Permissions{}, fmt.Errorf("GET %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return modules.Permissions{}, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		se := &StatusError{Code: resp.StatusCode, Message: errorMessage(body)}
		if resp.StatusCode < 500 {
			return modules.Permissions{}, backoff.Permanent(se)
		}
		return modules.Permissions{}, se
	}

	var p modules.Permissions
	if err := json.Unmarshal(body, &p); err != nil {
		return modules.Permissions{}, backoff.Permanent(fmt.Errorf("decode permissions: %w", err))
	}
	if p.CompanyID == "" {
		p.CompanyID = companyID
	}
	return p.Complete(), nil
}

// errorMessage extrae el campo message de un dto.ErrorResponse si viene.
func errorMessage(body []byte) string {
	var e struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err != nil || e.Message == "" {
		return strings.TrimSpace(string(body))
	}
	return e.Message
}
