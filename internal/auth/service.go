package auth

import (
	"context"
	"time"

	"github.com/FinFellows/Server/internal/auth/credentials"
	"github.com/FinFellows/Server/internal/auth/token"
	"github.com/FinFellows/Server/internal/logger"
	"github.com/FinFellows/Server/internal/user"
)

// Provider exchanges an authorization code for identity facts. It is
// satisfied by the kakao client.
type Provider interface {
	ExchangeCode(ctx context.Context, code string) (string, error)
	FetchProfile(ctx context.Context, accessToken string) (Profile, error)
}

// Codec is the token codec surface the orchestrator needs.
type Codec interface {
	Issue(id token.Identity) (token.Mapping, error)
	Rotate(id token.Identity, refreshToken string) (token.Mapping, error)
	Validate(tokenString string) bool
	Inspect(tokenString string) (email string, remaining time.Duration, err error)
}

// TxRunner scopes a function to a single store transaction.
type TxRunner interface {
	Atomic(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service is the session orchestrator: it turns provider profiles into
// local identities, issues and rotates token pairs, and ends sessions.
// It owns no state of its own.
type Service struct {
	provider Provider
	codec    Codec
	users    user.Store
	creds    credentials.Store
	tx       TxRunner
}

func NewService(
	provider Provider,
	codec Codec,
	users user.Store,
	creds credentials.Store,
	tx TxRunner,
) *Service {
	return &Service{
		provider: provider,
		codec:    codec,
		users:    users,
		creds:    creds,
		tx:       tx,
	}
}

// Login runs the full OAuth login: code exchange, profile fetch, then
// LoginProfile with the given default role for first-time accounts.
func (s *Service) Login(ctx context.Context, code string, roleForNewAccounts user.Role) (AuthResult, error) {
	providerToken, err := s.provider.ExchangeCode(ctx, code)
	if err != nil {
		return AuthResult{}, err
	}

	profile, err := s.provider.FetchProfile(ctx, providerToken)
	if err != nil {
		return AuthResult{}, err
	}

	return s.LoginProfile(ctx, profile, roleForNewAccounts)
}

// LoginProfile authenticates a provider profile against the identity
// store, creating the user on first login. The stored credential row
// for the email is replaced, never duplicated.
func (s *Service) LoginProfile(ctx context.Context, profile Profile, roleForNewAccounts user.Role) (AuthResult, error) {
	if profile.Email == "" {
		// the provider may omit email; without one there is no local identity
		return AuthResult{}, ErrInvalidCredentials
	}
	if !roleForNewAccounts.Valid() {
		return AuthResult{}, &AssertionError{Msg: "unknown role for new accounts"}
	}

	var res AuthResult
	err := s.tx.Atomic(ctx, func(ctx context.Context) error {
		existing, err := s.users.FindByEmail(ctx, profile.Email)
		if err != nil {
			return err
		}
		if existing == nil {
			created := &user.User{
				ProviderID: profile.ID,
				Email:      profile.Email,
				Name:       profile.Nickname,
				Role:       roleForNewAccounts,
			}
			if err := s.users.Create(ctx, created); err != nil {
				return err
			}
			logger.Info("user registered", map[string]any{
				"email": profile.Email,
				"role":  string(roleForNewAccounts),
			})
		}

		// authenticate: the provider id acts as the credential for the email
		u, err := s.users.FindByEmail(ctx, profile.Email)
		if err != nil {
			return err
		}
		if u == nil || u.ProviderID != profile.ID {
			return ErrInvalidCredentials
		}

		principal := NewPrincipal(u)
		mapping, err := s.codec.Issue(token.Identity{
			Email: principal.Email,
			Role:  string(principal.Role),
		})
		if err != nil {
			return err
		}

		if err := s.creds.Save(ctx, credentials.Credential{
			Email:        mapping.Email,
			RefreshToken: mapping.RefreshToken,
		}); err != nil {
			return err
		}

		res = AuthResult{
			AccessToken:  mapping.AccessToken,
			RefreshToken: mapping.RefreshToken,
			Role:         u.Role,
		}
		return nil
	})
	if err != nil {
		return AuthResult{}, err
	}
	return res, nil
}

// Refresh validates a presented refresh token and re-issues the pair.
// A token with remaining validity keeps its refresh value (rotation);
// an expired one gets a brand-new pair. Either way the credential row
// is updated in place. Any validation failure aborts with
// ErrInvalidAuthentication and no state change.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (AuthResult, error) {
	// signature/shape check; expiry handled below
	_, remaining, err := s.codec.Inspect(refreshToken)
	if err != nil {
		return AuthResult{}, ErrInvalidAuthentication
	}

	var res AuthResult
	err = s.tx.Atomic(ctx, func(ctx context.Context) error {
		cred, err := s.creds.FindByRefreshToken(ctx, refreshToken)
		if err != nil {
			return err
		}
		if cred == nil {
			return ErrInvalidAuthentication
		}

		// the stored email is the source of truth, not the token payload
		principal, err := s.ResolveIdentity(ctx, cred.Email)
		if err != nil {
			return err
		}
		if principal.Email != cred.Email {
			return ErrInvalidAuthentication
		}

		id := token.Identity{
			Email: principal.Email,
			Role:  string(principal.Role),
		}

		var mapping token.Mapping
		if remaining > 0 {
			mapping, err = s.codec.Rotate(id, cred.RefreshToken)
		} else {
			mapping, err = s.codec.Issue(id)
		}
		if err != nil {
			return err
		}

		if err := s.creds.Update(ctx, credentials.Credential{
			Email:        cred.Email,
			RefreshToken: mapping.RefreshToken,
		}); err != nil {
			return err
		}

		res = AuthResult{
			AccessToken:  mapping.AccessToken,
			RefreshToken: mapping.RefreshToken,
			Role:         principal.Role,
		}
		return nil
	})
	if err != nil {
		return AuthResult{}, err
	}
	return res, nil
}

// SignOut ends the session holding the given refresh token. It is not
// idempotent: a second call for the same token fails because there is
// no active session left to end.
func (s *Service) SignOut(ctx context.Context, refreshToken string) (Message, error) {
	var msg Message
	err := s.tx.Atomic(ctx, func(ctx context.Context) error {
		cred, err := s.creds.FindByRefreshToken(ctx, refreshToken)
		if err != nil {
			return err
		}
		if cred == nil {
			return ErrInvalidAuthentication
		}

		if err := s.creds.Delete(ctx, cred.Email); err != nil {
			return err
		}

		msg = Message{Message: "Signed out successfully."}
		return nil
	})
	if err != nil {
		return Message{}, err
	}
	return msg, nil
}

// DeleteAccount removes the user row and the credential row of the
// principal. Both must exist up front; the deletes then run
// sequentially with no compensating rollback if the second one fails.
func (s *Service) DeleteAccount(ctx context.Context, principal Principal) (Message, error) {
	u, err := s.users.FindByID(ctx, principal.ID)
	if err != nil {
		return Message{}, err
	}
	if err := Assert(u != nil, "user record not found"); err != nil {
		return Message{}, err
	}

	cred, err := s.creds.FindByEmail(ctx, principal.Email)
	if err != nil {
		return Message{}, err
	}
	if err := Assert(cred != nil, "token record not found"); err != nil {
		return Message{}, err
	}

	if err := s.users.Delete(ctx, u.ID); err != nil {
		return Message{}, err
	}
	if err := s.creds.Delete(ctx, cred.Email); err != nil {
		return Message{}, err
	}

	logger.Info("account deleted", map[string]any{"email": principal.Email})

	return Message{Message: "Account deleted successfully."}, nil
}

// WhoAmI returns the user record behind the principal.
func (s *Service) WhoAmI(ctx context.Context, principal Principal) (*user.User, error) {
	u, err := s.users.FindByID(ctx, principal.ID)
	if err != nil {
		return nil, err
	}
	if err := Assert(u != nil, "user record not found"); err != nil {
		return nil, err
	}
	return u, nil
}

// ResolveIdentity re-derives a principal from a known email, such as
// the one stored next to a refresh token.
func (s *Service) ResolveIdentity(ctx context.Context, email string) (Principal, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return Principal{}, err
	}
	if u == nil {
		return Principal{}, ErrInvalidAuthentication
	}
	return NewPrincipal(u), nil
}
