package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *JWTService {
	t.Helper()
	svc, ok := NewJWTService("test-secret-key-for-jwt", "1h", "24h").(*JWTService)
	require.True(t, ok)
	return svc
}

func TestGenerateRefreshToken_DistinctPerCall(t *testing.T) {
	svc := newTestService(t)

	first, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	second, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestRevokeToken_MarksToken(t *testing.T) {
	svc := newTestService(t)

	token, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(token))

	svc.RevokeToken(token)

	assert.True(t, svc.IsTokenRevoked(token))
}

func TestRevokeToken_OnlyAffectsRevokedToken(t *testing.T) {
	svc := newTestService(t)

	revoked, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	kept, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	svc.RevokeToken(revoked)

	assert.True(t, svc.IsTokenRevoked(revoked))
	assert.False(t, svc.IsTokenRevoked(kept))
}

func TestRevokeToken_PrunesExpiredEntries(t *testing.T) {
	svc := newTestService(t)

	svc.mu.Lock()
	svc.revokedTokens["long-expired"] = time.Now().Add(-time.Hour).Unix()
	svc.mu.Unlock()

	assert.False(t, svc.IsTokenRevoked("long-expired"))

	token, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	svc.RevokeToken(token)

	svc.mu.RLock()
	_, stillThere := svc.revokedTokens["long-expired"]
	svc.mu.RUnlock()
	assert.False(t, stillThere)
	assert.True(t, svc.IsTokenRevoked(token))
}

func TestRevokeToken_UndecodableTokenStillBlocked(t *testing.T) {
	svc := newTestService(t)

	svc.RevokeToken("not-a-jwt")

	assert.True(t, svc.IsTokenRevoked("not-a-jwt"))
}
