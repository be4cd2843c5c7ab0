// Package kakao talks to the Kakao OAuth endpoints: authorization-code
// exchange and profile lookup. It returns identity facts only and makes
// no auth decisions.
package kakao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/FinFellows/Server/internal/auth"
)

// Config pins the provider settings at construction time.
type Config struct {
	ClientID    string
	RedirectURL string
	AuthURL     string
	TokenURL    string
	ProfileURL  string
}

type Client struct {
	oauth      *oauth2.Config
	profileURL string
	http       *http.Client
}

func New(cfg Config, httpClient *http.Client) (*Client, error) {
	if cfg.ClientID == "" || cfg.RedirectURL == "" {
		return nil, errors.New("kakao: client id and redirect url are required")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		oauth: &oauth2.Config{
			ClientID:    cfg.ClientID,
			RedirectURL: cfg.RedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
				// Kakao expects client_id in the form body, not basic auth.
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		profileURL: cfg.ProfileURL,
		http:       httpClient,
	}, nil
}

// AuthCodeURL returns the provider authorization URL for the given state.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// ExchangeCode trades an authorization code for the provider access
// token via a form-encoded POST to the token endpoint.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)

	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return "", &auth.ExternalProviderError{Op: "exchange code", Err: err}
	}
	if tok.AccessToken == "" {
		return "", &auth.ExternalProviderError{Op: "exchange code", Err: errors.New("empty access_token")}
	}
	return tok.AccessToken, nil
}

// kakaoProfileBody mirrors the provider response shape. Nested objects
// are pointers so absent levels parse cleanly.
type kakaoProfileBody struct {
	ID           json.Number `json:"id"`
	KakaoAccount *struct {
		Email   *string `json:"email"`
		Profile *struct {
			Nickname *string `json:"nickname"`
		} `json:"profile"`
	} `json:"kakao_account"`
}

// FetchProfile loads the provider profile with the given bearer token.
// Absent email or nickname yield empty Profile fields; a malformed body
// or a failed request is an ExternalProviderError.
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (auth.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.profileURL, nil)
	if err != nil {
		return auth.Profile{}, &auth.ExternalProviderError{Op: "fetch profile", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")

	resp, err := c.http.Do(req)
	if err != nil {
		return auth.Profile{}, &auth.ExternalProviderError{Op: "fetch profile", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return auth.Profile{}, &auth.ExternalProviderError{
			Op:  "fetch profile",
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return auth.Profile{}, &auth.ExternalProviderError{Op: "fetch profile", Err: err}
	}

	return ParseProfile(body)
}

// ParseProfile extracts a Profile from a provider response body with
// explicit per-field presence checks. Only a missing id is fatal.
func ParseProfile(body []byte) (auth.Profile, error) {
	var raw kakaoProfileBody
	if err := json.Unmarshal(body, &raw); err != nil {
		return auth.Profile{}, &auth.ExternalProviderError{Op: "parse profile", Err: err}
	}
	if raw.ID.String() == "" {
		return auth.Profile{}, &auth.ExternalProviderError{Op: "parse profile", Err: errors.New("missing id")}
	}

	p := auth.Profile{ID: raw.ID.String()}
	if raw.KakaoAccount != nil {
		if raw.KakaoAccount.Email != nil {
			p.Email = *raw.KakaoAccount.Email
		}
		if raw.KakaoAccount.Profile != nil && raw.KakaoAccount.Profile.Nickname != nil {
			p.Nickname = *raw.KakaoAccount.Profile.Nickname
		}
	}
	return p, nil
}
