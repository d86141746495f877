package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/go-drink-ledger/internal/config"
	"github.com/MKhiriev/go-drink-ledger/internal/logger"
	"github.com/MKhiriev/go-drink-ledger/internal/utils"
	"github.com/MKhiriev/go-drink-ledger/models"
	"github.com/go-resty/resty/v2"
)

type httpLedgerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPLedgerAdapter constructs the REST implementation of [LedgerAdapter].
// The base URL is normalised: a missing scheme defaults to http and a
// trailing slash is dropped.
func NewHTTPLedgerAdapter(cfg config.ClientAdapter, logger *logger.Logger) (LedgerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpLedgerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyBaseURL
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpLedgerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpLedgerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpLedgerAdapter) AdminLogin(ctx context.Context, password string) (string, error) {
	var loginResp models.AdminLoginResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.AdminLoginRequest{Password: password}).
		SetResult(&loginResp).
		SetError(&loginResp).
		Post("/api/admin/login")
	if err != nil {
		return "", fmt.Errorf("admin login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	if !loginResp.Success || loginResp.Token == "" {
		return "", fmt.Errorf("%w: %s", ErrUnauthorized, loginResp.Message)
	}

	h.SetToken(loginResp.Token)
	h.logger.Debug().Msg("admin token received")
	return loginResp.Token, nil
}

func (h *httpLedgerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpLedgerAdapter) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := h.getJSON(ctx, "/api/users", &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (h *httpLedgerAdapter) CreateUser(ctx context.Context, name string) (models.User, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.User{}, err
	}

	var user models.User
	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(models.CreateUserRequest{Name: name}).
		SetResult(&user).
		Post("/api/users")
	if err != nil {
		return models.User{}, fmt.Errorf("create user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (h *httpLedgerAdapter) Balances(ctx context.Context) ([]models.Balance, error) {
	var balances []models.Balance
	if err := h.getJSON(ctx, "/api/reports/balances", &balances); err != nil {
		return nil, fmt.Errorf("balances: %w", err)
	}
	return balances, nil
}

func (h *httpLedgerAdapter) Summary(ctx context.Context) (models.Summary, error) {
	var summary models.Summary
	if err := h.getJSON(ctx, "/api/reports/summary", &summary); err != nil {
		return models.Summary{}, fmt.Errorf("summary: %w", err)
	}
	return summary, nil
}

func (h *httpLedgerAdapter) Months(ctx context.Context) ([]string, error) {
	var months []string
	if err := h.getJSON(ctx, "/api/history/months", &months); err != nil {
		return nil, fmt.Errorf("months: %w", err)
	}
	return months, nil
}

func (h *httpLedgerAdapter) SettleUser(ctx context.Context, userID int64) (models.Settlement, error) {
	return h.settle(ctx, "/api/transactions/user/"+strconv.FormatInt(userID, 10))
}

func (h *httpLedgerAdapter) SettleAll(ctx context.Context) (models.Settlement, error) {
	return h.settle(ctx, "/api/transactions")
}

func (h *httpLedgerAdapter) settle(ctx context.Context, path string) (models.Settlement, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.Settlement{}, err
	}

	var settlement models.Settlement
	resp, err := req.SetResult(&settlement).Delete(path)
	if err != nil {
		return models.Settlement{}, fmt.Errorf("settle request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Settlement{}, err
	}

	return settlement, nil
}

func (h *httpLedgerAdapter) ExportMonth(ctx context.Context, month string) ([]byte, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := req.
		SetHeader("Accept", utils.XLSXContentType).
		SetPathParam("month", month).
		Get("/api/history/month/{month}/export")
	if err != nil {
		return nil, fmt.Errorf("export request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}

func (h *httpLedgerAdapter) getJSON(ctx context.Context, path string, result any) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(result).
		Get(path)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}

	return mapHTTPError(resp)
}

// authedRequest returns a request carrying the admin token. It fails fast
// when no token is stored.
func (h *httpLedgerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNoToken
	}

	return h.client.R().
		SetContext(ctx).
		SetAuthToken(token), nil
}
