package guard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	serviceErrors "github.com/danilovkiri/dk_go_link_resolver/internal/service/errors"
	"github.com/danilovkiri/dk_go_link_resolver/internal/service/modellink"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedNow
}

// Tests

func TestAuthorize_Open(t *testing.T) {
	g := InitGuard(fixedClock)
	link := modellink.Link{Alias: "someAlias", URL: "https://example.com"}
	assert.NoError(t, g.Authorize(link, ""))
}

func TestAuthorize_ExpiredOneSecondAgo(t *testing.T) {
	g := InitGuard(fixedClock)
	expiry := fixedNow.Add(-1 * time.Second)
	link := modellink.Link{Alias: "someAlias", ExpiresAt: &expiry}
	var expErr *serviceErrors.ExpiredError
	assert.ErrorAs(t, g.Authorize(link, ""), &expErr)
}

func TestAuthorize_ExpiryBeatsCredentials(t *testing.T) {
	g := InitGuard(fixedClock)
	hash, err := g.HashPassword("secret")
	assert.NoError(t, err)
	expiry := fixedNow.Add(-time.Hour)
	link := modellink.Link{Alias: "someAlias", PasswordHash: hash, ExpiresAt: &expiry}
	var expErr *serviceErrors.ExpiredError
	assert.ErrorAs(t, g.Authorize(link, "secret"), &expErr)
}

func TestAuthorize_NotYetExpired(t *testing.T) {
	g := InitGuard(fixedClock)
	expiry := fixedNow.Add(1 * time.Second)
	link := modellink.Link{Alias: "someAlias", ExpiresAt: &expiry}
	assert.NoError(t, g.Authorize(link, ""))
}

func TestAuthorize_PasswordFlows(t *testing.T) {
	g := InitGuard(fixedClock)
	hash, err := g.HashPassword("secret")
	assert.NoError(t, err)
	link := modellink.Link{Alias: "someAlias", PasswordHash: hash}

	var requiredErr *serviceErrors.PasswordRequiredError
	assert.ErrorAs(t, g.Authorize(link, ""), &requiredErr)

	var wrongErr *serviceErrors.WrongPasswordError
	assert.ErrorAs(t, g.Authorize(link, "wrong"), &wrongErr)

	assert.NoError(t, g.Authorize(link, "secret"))
}

func TestAuthorizeOwner(t *testing.T) {
	g := InitGuard(nil)
	owned := modellink.Link{Alias: "someAlias", Owner: "user-1"}
	assert.NoError(t, g.AuthorizeOwner(owned, "user-1"))

	var notOwnerErr *serviceErrors.NotOwnerError
	assert.ErrorAs(t, g.AuthorizeOwner(owned, "user-2"), &notOwnerErr)
	assert.ErrorAs(t, g.AuthorizeOwner(owned, ""), &notOwnerErr)

	// anonymous links are never owner-accessible
	anonymous := modellink.Link{Alias: "someAlias"}
	assert.ErrorAs(t, g.AuthorizeOwner(anonymous, "user-1"), &notOwnerErr)
}

// Benchmarks

func BenchmarkGuard_Authorize(b *testing.B) {
	g := InitGuard(fixedClock)
	link := modellink.Link{Alias: "someAlias"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.Authorize(link, "")
	}
}
