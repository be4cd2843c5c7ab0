// Package token creates and validates the signed access and refresh
// tokens that carry a session.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config is fixed at construction; the codec never reads process-wide
// state.
type Config struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Now is the clock; defaults to time.Now.
	Now func() time.Time
}

// Identity is the subject a token pair is issued for.
type Identity struct {
	Email string
	Role  string
}

// Mapping is the token pair produced for a single issuance event.
type Mapping struct {
	AccessToken  string
	RefreshToken string
	Email        string
}

type claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewCodec(cfg Config) (*Codec, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token: signing secret is required")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Codec{
		secret:     cfg.Secret,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        now,
	}, nil
}

// Issue produces a fresh access/refresh pair for the principal. Each
// token embeds the subject email and role with its own expiration.
func (c *Codec) Issue(id Identity) (Mapping, error) {
	access, err := c.sign(id, c.accessTTL)
	if err != nil {
		return Mapping{}, err
	}
	refresh, err := c.sign(id, c.refreshTTL)
	if err != nil {
		return Mapping{}, err
	}
	return Mapping{
		AccessToken:  access,
		RefreshToken: refresh,
		Email:        id.Email,
	}, nil
}

// Rotate issues a new access token while keeping the presented refresh
// token for the same logical session.
func (c *Codec) Rotate(id Identity, refreshToken string) (Mapping, error) {
	access, err := c.sign(id, c.accessTTL)
	if err != nil {
		return Mapping{}, err
	}
	return Mapping{
		AccessToken:  access,
		RefreshToken: refreshToken,
		Email:        id.Email,
	}, nil
}

func (c *Codec) sign(id Identity, ttl time.Duration) (string, error) {
	now := c.now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: id.Role,
	})

	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Validate reports whether the token is well formed, correctly signed,
// and unexpired. It fails closed: any defect returns false.
func (c *Codec) Validate(tokenString string) bool {
	_, err := jwt.ParseWithClaims(tokenString, &claims{}, c.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	return err == nil
}

// Inspect verifies signature and shape only, without enforcing expiry,
// and returns the subject email plus the time left until expiry. The
// remaining duration is zero or negative for expired tokens.
func (c *Codec) Inspect(tokenString string) (email string, remaining time.Duration, err error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, c.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return "", 0, fmt.Errorf("token: inspect: %w", err)
	}

	cl, ok := parsed.Claims.(*claims)
	if !ok || cl.Subject == "" || cl.ExpiresAt == nil {
		return "", 0, errors.New("token: inspect: missing subject or expiry")
	}

	return cl.Subject, cl.ExpiresAt.Sub(c.now()), nil
}

// Subject returns the subject email of a valid token.
func (c *Codec) Subject(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, c.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return "", fmt.Errorf("token: subject: %w", err)
	}
	cl := parsed.Claims.(*claims)
	if cl.Subject == "" {
		return "", errors.New("token: subject: empty")
	}
	return cl.Subject, nil
}

func (c *Codec) keyFunc(*jwt.Token) (any, error) {
	return c.secret, nil
}
