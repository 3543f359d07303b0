package api

import (
	"context"
	"errors"
	"net/http"
	"regexp"

	"github.com/taebin/travelsay/internal/contract"
)

const memberPrefix = "/api/member"

var bearerPrefix = regexp.MustCompile(`(?i)^Bearer\s+`)

// Login exchanges member credentials for an access token. A leading
// "Bearer " in the response is stripped.
func (c *Client) Login(ctx context.Context, loginID, password string) (string, error) {
	var resp contract.AuthResponse
	body := contract.LoginRequest{LoginID: loginID, Password: password}
	if err := c.do(ctx, call{method: http.MethodPost, path: memberPrefix + "/login", body: body, out: &resp}); err != nil {
		return "", err
	}
	token := bearerPrefix.ReplaceAllString(resp.AccessToken, "")
	if token == "" {
		return "", errors.New("login response carried no access token")
	}
	return token, nil
}

// Me returns the signed-in member.
func (c *Client) Me(ctx context.Context) (*contract.MeResponse, error) {
	var resp contract.MeResponse
	if err := c.do(ctx, call{method: http.MethodGet, path: memberPrefix + "/me", out: &resp, auth: true}); err != nil {
		return nil, err
	}
	return &resp, nil
}
