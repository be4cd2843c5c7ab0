package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testCodec(t *testing.T, now *time.Time) *Codec {
	t.Helper()
	c, err := NewCodec(Config{
		Secret:     []byte("test-secret"),
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
		Now:        func() time.Time { return *now },
	})
	require.NoError(t, err)
	return c
}

func TestNewCodecRequiresSecret(t *testing.T) {
	_, err := NewCodec(Config{})
	require.Error(t, err)
}

func TestIssueRoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := testCodec(t, &now)

	m, err := c.Issue(Identity{Email: "a@b.com", Role: "USER"})
	require.NoError(t, err)
	require.NotEmpty(t, m.AccessToken)
	require.NotEmpty(t, m.RefreshToken)
	require.NotEqual(t, m.AccessToken, m.RefreshToken)
	require.Equal(t, "a@b.com", m.Email)

	require.True(t, c.Validate(m.AccessToken))
	require.True(t, c.Validate(m.RefreshToken))

	sub, err := c.Subject(m.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "a@b.com", sub)
}

func TestValidateFailsAfterExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := testCodec(t, &now)

	m, err := c.Issue(Identity{Email: "a@b.com", Role: "USER"})
	require.NoError(t, err)

	now = now.Add(31 * time.Minute)
	require.False(t, c.Validate(m.AccessToken))
	require.True(t, c.Validate(m.RefreshToken))

	now = now.Add(8 * 24 * time.Hour)
	require.False(t, c.Validate(m.RefreshToken))
}

func TestValidateRejectsWrongSignature(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := testCodec(t, &now)

	other, err := NewCodec(Config{
		Secret:     []byte("another-secret"),
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
		Now:        func() time.Time { return now },
	})
	require.NoError(t, err)

	m, err := other.Issue(Identity{Email: "a@b.com", Role: "USER"})
	require.NoError(t, err)

	require.False(t, c.Validate(m.AccessToken))

	_, _, err = c.Inspect(m.RefreshToken)
	require.Error(t, err)
}

func TestInspectReportsRemaining(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := testCodec(t, &now)

	m, err := c.Issue(Identity{Email: "a@b.com", Role: "ADMIN"})
	require.NoError(t, err)

	email, remaining, err := c.Inspect(m.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, "a@b.com", email)
	require.Equal(t, 7*24*time.Hour, remaining)

	// an expired token still inspects cleanly, remaining goes negative
	now = now.Add(8 * 24 * time.Hour)
	email, remaining, err = c.Inspect(m.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, "a@b.com", email)
	require.LessOrEqual(t, remaining, time.Duration(0))
}

func TestInspectRejectsGarbage(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := testCodec(t, &now)

	_, _, err := c.Inspect("not-a-token")
	require.Error(t, err)
}

func TestRotateKeepsRefreshToken(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := testCodec(t, &now)

	id := Identity{Email: "a@b.com", Role: "USER"}
	first, err := c.Issue(id)
	require.NoError(t, err)

	now = now.Add(time.Minute)
	rotated, err := c.Rotate(id, first.RefreshToken)
	require.NoError(t, err)

	require.Equal(t, first.RefreshToken, rotated.RefreshToken)
	require.NotEqual(t, first.AccessToken, rotated.AccessToken)
	require.True(t, c.Validate(rotated.AccessToken))
}
