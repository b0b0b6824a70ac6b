package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// GoTrue is a client for the admin user endpoints of a GoTrue compatible
// identity provider.
type GoTrue struct {
	baseURL    string
	serviceKey string
	client     *http.Client
	logger     *zap.Logger
}

func NewGoTrue(baseURL, serviceKey string, client *http.Client, logger ...*zap.Logger) *GoTrue {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	l := zap.L().Named("identity.gotrue")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("identity.gotrue")
	}
	return &GoTrue{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		client:     client,
		logger:     l,
	}
}

// NewProvisioner returns a GoTrue client when both url and key are set and a
// Noop otherwise.
func NewProvisioner(baseURL, serviceKey string, logger *zap.Logger) Provisioner {
	if baseURL == "" || serviceKey == "" {
		return Noop{}
	}
	return NewGoTrue(baseURL, serviceKey, nil, logger)
}

type createUserPayload struct {
	Email        string            `json:"email"`
	Password     string            `json:"password"`
	EmailConfirm bool              `json:"email_confirm"`
	UserMetadata map[string]string `json:"user_metadata"`
}

type userPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (g *GoTrue) CreateUser(ctx context.Context, u NewUser) (User, error) {
	body, err := json.Marshal(createUserPayload{
		Email:        u.Email,
		Password:     u.Password,
		EmailConfirm: true,
		UserMetadata: map[string]string{"full_name": u.FullName},
	})
	if err != nil {
		return User{}, err
	}

	resp, err := g.do(ctx, http.MethodPost, "/auth/v1/admin/users", body)
	if err != nil {
		return User{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnprocessableEntity || resp.StatusCode == http.StatusConflict:
		return User{}, ErrEmailTaken
	case resp.StatusCode >= 300:
		return User{}, g.unexpected(resp)
	}

	var out userPayload
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return User{}, fmt.Errorf("identity: decode user: %w", err)
	}
	if out.ID == "" {
		return User{}, fmt.Errorf("identity: provider returned no user id")
	}

	g.logger.Info("identity user created", zap.String("user_id", out.ID))
	return User{ID: out.ID, Email: out.Email}, nil
}

func (g *GoTrue) DeleteUser(ctx context.Context, userID string) error {
	resp, err := g.do(ctx, http.MethodDelete, "/auth/v1/admin/users/"+userID, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrUserNotFound
	case resp.StatusCode >= 300:
		return g.unexpected(resp)
	}

	g.logger.Info("identity user deleted", zap.String("user_id", userID))
	return nil
}

func (g *GoTrue) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, rdr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", g.serviceKey)
	req.Header.Set("Authorization", "Bearer "+g.serviceKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity: %s %s: %w", method, path, err)
	}
	return resp, nil
}

func (g *GoTrue) unexpected(resp *http.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	g.logger.Warn("identity provider error",
		zap.Int("status", resp.StatusCode),
		zap.ByteString("body", msg),
	)
	return fmt.Errorf("identity: unexpected status %d", resp.StatusCode)
}
