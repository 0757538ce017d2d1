package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/danilovkiri/dk_go_link_resolver/internal/config"
	serviceErrors "github.com/danilovkiri/dk_go_link_resolver/internal/service/errors"
	secretary "github.com/danilovkiri/dk_go_link_resolver/internal/service/secretary/v1"
)

func newTestRegistry(t *testing.T, clock func() time.Time) *Registry {
	cfg, _ := config.NewSecretConfig()
	cfg.UserKey = "jds__63h3_7ds"
	sec, err := secretary.NewSecretaryService(cfg)
	assert.NoError(t, err)
	registry, err := InitRegistry(sec, 24*time.Hour, clock)
	assert.NoError(t, err)
	return registry
}

// Tests

func TestInitRegistry_NilSecretary(t *testing.T) {
	_, err := InitRegistry(nil, time.Hour, nil)
	var nilErr *serviceErrors.ServiceFoundNilDependency
	assert.ErrorAs(t, err, &nilErr)
}

func TestIssueResolve(t *testing.T) {
	registry := newTestRegistry(t, nil)
	userID := uuid.New().String()
	token := registry.Issue(userID)
	resolved, err := registry.Resolve(token)
	assert.NoError(t, err)
	assert.Equal(t, userID, resolved.UserID)
	assert.True(t, resolved.ExpiresAt.After(time.Now().UTC()))
}

func TestResolve_Expired(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	registry := newTestRegistry(t, func() time.Time { return now })
	token := registry.Issue(uuid.New().String())

	// move the clock beyond the TTL
	now = now.Add(25 * time.Hour)
	_, err := registry.Resolve(token)
	var expErr *serviceErrors.SessionExpiredError
	assert.ErrorAs(t, err, &expErr)
}

func TestResolve_Garbage(t *testing.T) {
	registry := newTestRegistry(t, nil)
	var invalidErr *serviceErrors.SessionInvalidError
	_, err := registry.Resolve("not-a-token")
	assert.ErrorAs(t, err, &invalidErr)
}
