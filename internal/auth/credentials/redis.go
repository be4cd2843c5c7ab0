package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps one record per email plus a token-value index so
// both lookup directions stay O(1). Records expire with the refresh
// token lifetime.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) emailKey(email string) string {
	return "credential:email:" + email
}

func (s *RedisStore) tokenKey(refreshToken string) string {
	return "credential:token:" + refreshToken
}

func (s *RedisStore) FindByEmail(ctx context.Context, email string) (*Credential, error) {
	val, err := s.client.Get(ctx, s.emailKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("credentials: redis get: %w", err)
	}

	var c Credential
	if err := json.Unmarshal([]byte(val), &c); err != nil {
		return nil, fmt.Errorf("credentials: redis unmarshal: %w", err)
	}
	return &c, nil
}

func (s *RedisStore) FindByRefreshToken(ctx context.Context, refreshToken string) (*Credential, error) {
	email, err := s.client.Get(ctx, s.tokenKey(refreshToken)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("credentials: redis get index: %w", err)
	}

	cred, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if cred == nil || cred.RefreshToken != refreshToken {
		// stale index entry
		return nil, nil
	}
	return cred, nil
}

func (s *RedisStore) Save(ctx context.Context, cred Credential) error {
	if cred.Email == "" || cred.RefreshToken == "" {
		return errors.New("credentials: missing email or refresh token")
	}

	prior, err := s.FindByEmail(ctx, cred.Email)
	if err != nil {
		return err
	}

	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("credentials: redis marshal: %w", err)
	}

	pipe := s.client.TxPipeline()
	if prior != nil {
		pipe.Del(ctx, s.tokenKey(prior.RefreshToken))
	}
	pipe.Set(ctx, s.emailKey(cred.Email), data, s.ttl)
	pipe.Set(ctx, s.tokenKey(cred.RefreshToken), cred.Email, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("credentials: redis save: %w", err)
	}
	return nil
}

func (s *RedisStore) Update(ctx context.Context, cred Credential) error {
	prior, err := s.FindByEmail(ctx, cred.Email)
	if err != nil {
		return err
	}
	if prior == nil {
		return errors.New("credentials: update: no record for email")
	}
	return s.Save(ctx, cred)
}

func (s *RedisStore) Delete(ctx context.Context, email string) error {
	prior, err := s.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.emailKey(email))
	if prior != nil {
		pipe.Del(ctx, s.tokenKey(prior.RefreshToken))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("credentials: redis delete: %w", err)
	}
	return nil
}
