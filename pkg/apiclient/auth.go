package apiclient

import (
	"context"
	"encoding/json"
	"net/http"

	apperrors "github.com/Obkeldiyev/vitality-clinic-hub/pkg/errors"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminLoginResult - ответ /admin/login: {data: {token, admin}}.
type AdminLoginResult struct {
	Token string
	User  json.RawMessage
}

// ReceptionLoginResult - ответ /reception/login: {success, data: [access, refresh]}.
type ReceptionLoginResult struct {
	AccessToken  string
	RefreshToken string
}

// У двух логинов разные схемы ответа, и они разбираются по отдельности.

func (c *Client) AdminLogin(ctx context.Context, creds Credentials) (AdminLoginResult, error) {
	var resp struct {
		Token string          `json:"token"`
		Data  json.RawMessage `json:"data"`
	}
	if err := c.Request(ctx, "/admin/login", Options{Method: http.MethodPost, Body: JSON(creds)}, false, &resp); err != nil {
		return AdminLoginResult{}, err
	}

	var data struct {
		Token string          `json:"token"`
		Admin json.RawMessage `json:"admin"`
	}
	_ = json.Unmarshal(resp.Data, &data)

	result := AdminLoginResult{Token: data.Token, User: data.Admin}
	if result.Token == "" {
		result.Token = resp.Token
	}
	if len(result.User) == 0 || string(result.User) == "null" {
		result.User = resp.Data
	}
	if result.Token == "" {
		return AdminLoginResult{}, apperrors.ErrInvalidLoginReply
	}
	return result, nil
}

func (c *Client) ReceptionLogin(ctx context.Context, creds Credentials) (ReceptionLoginResult, error) {
	var resp Envelope[[]string]
	if err := c.Request(ctx, "/reception/login", Options{Method: http.MethodPost, Body: JSON(creds)}, false, &resp); err != nil {
		return ReceptionLoginResult{}, err
	}
	if !resp.Success || len(resp.Data) < 2 {
		if resp.Message != "" {
			return ReceptionLoginResult{}, &APIError{Status: http.StatusOK, Message: resp.Message}
		}
		return ReceptionLoginResult{}, apperrors.ErrInvalidLoginReply
	}
	return ReceptionLoginResult{AccessToken: resp.Data[0], RefreshToken: resp.Data[1]}, nil
}
