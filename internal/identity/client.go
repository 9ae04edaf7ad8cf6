package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/arknat/hr-backend/internal/observability/metrics"
)

// Credentials hold the identity provider's admin API endpoint and the
// service-role key that authorizes privileged calls. They are injected from
// config and passed explicitly wherever an admin client is needed; the
// privileged client itself is built per call and never cached across requests.
type Credentials struct {
	BaseURL    string // e.g. https://auth.internal/auth/v1
	ServiceKey string
}

// Account is an identity-provider account as returned by the admin API.
type Account struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	AppMetadata  map[string]any `json:"app_metadata"`
	UserMetadata map[string]any `json:"user_metadata"`
}

// CreateUserParams describe a new identity account.
type CreateUserParams struct {
	Email        string         `json:"email"`
	Password     string         `json:"password"`
	EmailConfirm bool           `json:"email_confirm"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
}

type apiError struct {
	Msg     string `json:"msg"`
	Message string `json:"message"`
	ErrMsg  string `json:"error"`
}

func (e *apiError) text() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Message != "":
		return e.Message
	case e.ErrMsg != "":
		return e.ErrMsg
	}
	return "unknown identity provider error"
}

// AdminClient talks to the identity provider's admin API with service-role
// privileges.
type AdminClient struct {
	httpClient *resty.Client
	logger     *slog.Logger
}

// NewAdminClient creates a short-lived privileged client from explicit
// credentials.
func NewAdminClient(creds Credentials, logger *slog.Logger) *AdminClient {
	if logger == nil {
		logger = slog.Default()
	}

	client := resty.New().
		SetBaseURL(creds.BaseURL).
		SetTimeout(15 * time.Second).
		SetAuthToken(creds.ServiceKey).
		SetHeader("apikey", creds.ServiceKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &AdminClient{
		httpClient: client,
		logger:     logger,
	}
}

// CreateUser provisions a new identity account
func (c *AdminClient) CreateUser(ctx context.Context, params CreateUserParams) (*Account, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(params).
		Post("/admin/users")
	if err != nil {
		metrics.ObserveIdentityRequest("create_user", "error")
		return nil, fmt.Errorf("identity provider unreachable: %w", err)
	}

	if resp.IsError() {
		metrics.ObserveIdentityRequest("create_user", "error")
		return nil, fmt.Errorf("failed to create auth user: %s", errorText(resp.Body()))
	}
	metrics.ObserveIdentityRequest("create_user", "success")

	account := &Account{}
	if err := json.Unmarshal(resp.Body(), account); err != nil {
		return nil, fmt.Errorf("failed to decode identity response: %w", err)
	}

	c.logger.Info("identity account created",
		slog.String("auth_user_id", account.ID),
		slog.String("email", account.Email),
	)

	return account, nil
}

// GetUser fetches an identity account by id
func (c *AdminClient) GetUser(ctx context.Context, id string) (*Account, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get("/admin/users/" + id)
	if err != nil {
		metrics.ObserveIdentityRequest("get_user", "error")
		return nil, fmt.Errorf("identity provider unreachable: %w", err)
	}

	if resp.IsError() {
		metrics.ObserveIdentityRequest("get_user", "error")
		return nil, fmt.Errorf("failed to get auth user: %s", errorText(resp.Body()))
	}
	metrics.ObserveIdentityRequest("get_user", "success")

	account := &Account{}
	if err := json.Unmarshal(resp.Body(), account); err != nil {
		return nil, fmt.Errorf("failed to decode identity response: %w", err)
	}

	return account, nil
}

// UpdatePassword replaces the password of an identity account
func (c *AdminClient) UpdatePassword(ctx context.Context, id, password string) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(map[string]string{"password": password}).
		Put("/admin/users/" + id)
	if err != nil {
		metrics.ObserveIdentityRequest("update_password", "error")
		return fmt.Errorf("identity provider unreachable: %w", err)
	}

	if resp.IsError() {
		metrics.ObserveIdentityRequest("update_password", "error")
		return fmt.Errorf("failed to update auth user: %s", errorText(resp.Body()))
	}

	metrics.ObserveIdentityRequest("update_password", "success")
	return nil
}

// DeleteUser removes an identity account
func (c *AdminClient) DeleteUser(ctx context.Context, id string) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		Delete("/admin/users/" + id)
	if err != nil {
		metrics.ObserveIdentityRequest("delete_user", "error")
		return fmt.Errorf("identity provider unreachable: %w", err)
	}

	if resp.IsError() {
		metrics.ObserveIdentityRequest("delete_user", "error")
		return fmt.Errorf("failed to delete auth user: %s", errorText(resp.Body()))
	}
	metrics.ObserveIdentityRequest("delete_user", "success")

	c.logger.Info("identity account deleted", slog.String("auth_user_id", id))

	return nil
}

func errorText(body []byte) string {
	apiErr := &apiError{}
	if err := json.Unmarshal(body, apiErr); err != nil {
		return string(body)
	}
	return apiErr.text()
}
