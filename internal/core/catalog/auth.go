package catalog

import (
	"context"
	"net/http"
)

// User is the account returned by the mobile auth endpoints.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Image string `json:"image,omitempty"`
}

// AuthResponse carries the session token issued on login or register.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "auth/mobile/login", nil, false, loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and logs it in.
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	req := registerRequest{Name: name, Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "auth/mobile/register", nil, false, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
