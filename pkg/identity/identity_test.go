package identity

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/folio/pkg/model"
)

func TestFromUser(t *testing.T) {
	user := &model.User{
		ID:           "u-1",
		Email:        "alice@example.com",
		Name:         "Alice",
		Avatar:       "https://example.com/a.png",
		PasswordHash: "$2a$10$hash",
		Role:         model.RoleAdmin,
	}

	id := FromUser(user)
	assert.Equal(t, "u-1", id.ID)
	assert.Equal(t, "alice@example.com", id.Email)
	assert.Equal(t, "Alice", id.Name)
	assert.Equal(t, model.RoleAdmin, id.Role)
	assert.True(t, id.IsAdmin())
}

func TestIdentity_WithMethods(t *testing.T) {
	iat := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	exp := iat.Add(30 * 24 * time.Hour)
	ip := net.ParseIP("192.168.1.100")

	id := (&Identity{ID: "u-1"}).
		WithToken("jti-1", iat, exp).
		WithRemoteIP(ip)

	assert.Equal(t, "jti-1", id.TokenID)
	assert.Equal(t, iat, id.IssuedAt)
	assert.Equal(t, exp, id.ExpiresAt)
	assert.Equal(t, ip, id.RemoteIP)
}

func TestIdentity_IsAdmin(t *testing.T) {
	tests := []struct {
		name     string
		id       *Identity
		expected bool
	}{
		{name: "admin", id: &Identity{Role: model.RoleAdmin}, expected: true},
		{name: "user", id: &Identity{Role: model.RoleUser}, expected: false},
		{name: "empty role", id: &Identity{}, expected: false},
		{name: "nil identity", id: nil, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.id.IsAdmin())
		})
	}
}

func TestContextGetSet(t *testing.T) {
	ctx := context.Background()

	// Initially no identity
	id, ok := Get(ctx)
	assert.False(t, ok)
	assert.Nil(t, id)

	expected := &Identity{ID: "u-1", Email: "alice@example.com"}
	ctx = Set(ctx, expected)

	id, ok = Get(ctx)
	assert.True(t, ok)
	require.NotNil(t, id)
	assert.Equal(t, expected.ID, id.ID)
	assert.Equal(t, expected.Email, id.Email)

	// A nil identity in context is treated as absent
	ctx = Set(context.Background(), nil)
	_, ok = Get(ctx)
	assert.False(t, ok)
}

func TestClientIP(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ClientIP(ctx))

	withID := Set(ctx, (&Identity{ID: "u-1"}).WithRemoteIP(net.ParseIP("10.0.0.2")))
	assert.Equal(t, "10.0.0.2", ClientIP(withID))

	assert.Equal(t, "192.168.1.9", ClientIP(WithClientIP(withID, "192.168.1.9")))
}
