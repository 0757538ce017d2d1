package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/danilovkiri/dk_go_link_resolver/internal/api/rest/modeldto"
	"github.com/danilovkiri/dk_go_link_resolver/internal/config"
	"github.com/danilovkiri/dk_go_link_resolver/internal/storage/inmemory"
	"github.com/danilovkiri/dk_go_link_resolver/internal/storage/modelstorage"
)

type ServerTestSuite struct {
	suite.Suite
	storage *inmemory.Storage
	ts      *httptest.Server
	client  *http.Client
}

func (suite *ServerTestSuite) SetupTest() {
	cfg := &config.Config{
		ServerConfig:      &config.ServerConfig{ServerAddress: ":8080", BaseURL: "http://localhost:8080"},
		StorageConfig:     &config.StorageConfig{},
		SecretConfig:      &config.SecretConfig{UserKey: "jds__63h3_7ds", SessionTTL: time.Hour},
		MaintenanceConfig: &config.MaintenanceConfig{MetricsRetentionDays: 90, LookaheadDays: 4, LinkRetentionDays: 90, CollectionRetentionDays: 30, SweepInterval: time.Hour},
	}
	suite.storage = inmemory.InitStorage()
	srv, err := InitServer(cfg, suite.storage)
	assert.NoError(suite.T(), err)
	suite.ts = httptest.NewServer(srv.Handler)
	jar, _ := cookiejar.New(nil)
	suite.client = &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (suite *ServerTestSuite) TearDownTest() {
	suite.ts.Close()
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (suite *ServerTestSuite) postJSON(path string, body interface{}) *http.Response {
	b, err := json.Marshal(body)
	assert.NoError(suite.T(), err)
	res, err := suite.client.Post(suite.ts.URL+path, "application/json", bytes.NewReader(b))
	assert.NoError(suite.T(), err)
	return res
}

func (suite *ServerTestSuite) shorten(post modeldto.RequestURL) (modeldto.ResponseURL, int) {
	res := suite.postJSON("/api/shorten", post)
	defer res.Body.Close()
	var resData modeldto.ResponseURL
	if res.StatusCode == http.StatusCreated {
		assert.NoError(suite.T(), json.NewDecoder(res.Body).Decode(&resData))
	}
	return resData, res.StatusCode
}

func (suite *ServerTestSuite) openSession() string {
	res := suite.postJSON("/api/session", nil)
	defer res.Body.Close()
	assert.Equal(suite.T(), http.StatusCreated, res.StatusCode)
	var resData modeldto.ResponseSession
	assert.NoError(suite.T(), json.NewDecoder(res.Body).Decode(&resData))
	return resData.UserID
}

func (suite *ServerTestSuite) TestHandlePostURL() {
	res, err := suite.client.Post(suite.ts.URL+"/", "text/plain", strings.NewReader("https://example.com/some/path"))
	assert.NoError(suite.T(), err)
	defer res.Body.Close()
	assert.Equal(suite.T(), http.StatusCreated, res.StatusCode)
}

func (suite *ServerTestSuite) TestJSONHandlePostURL() {
	resData, code := suite.shorten(modeldto.RequestURL{URL: "https://example.com"})
	assert.Equal(suite.T(), http.StatusCreated, code)
	assert.Len(suite.T(), resData.Alias, 8)

	_, code = suite.shorten(modeldto.RequestURL{URL: "not_a_url"})
	assert.Equal(suite.T(), http.StatusBadRequest, code)

	_, code = suite.shorten(modeldto.RequestURL{URL: "https://example.com", Alias: "myAlias"})
	assert.Equal(suite.T(), http.StatusCreated, code)
	_, code = suite.shorten(modeldto.RequestURL{URL: "https://example.org", Alias: "myAlias"})
	assert.Equal(suite.T(), http.StatusConflict, code)

	_, code = suite.shorten(modeldto.RequestURL{URL: "https://example.com", Alias: "api"})
	assert.Equal(suite.T(), http.StatusBadRequest, code)
}

func (suite *ServerTestSuite) TestHandleGetURL() {
	resData, code := suite.shorten(modeldto.RequestURL{URL: "https://example.com/landing"})
	assert.Equal(suite.T(), http.StatusCreated, code)

	res, err := suite.client.Get(suite.ts.URL + "/" + resData.Alias)
	assert.NoError(suite.T(), err)
	res.Body.Close()
	assert.Equal(suite.T(), http.StatusTemporaryRedirect, res.StatusCode)
	assert.Equal(suite.T(), "https://example.com/landing", res.Header.Get("Location"))

	res, err = suite.client.Get(suite.ts.URL + "/noSuchAlias")
	assert.NoError(suite.T(), err)
	res.Body.Close()
	assert.Equal(suite.T(), http.StatusNotFound, res.StatusCode)
}

func (suite *ServerTestSuite) TestHandleGetURL_Expired() {
	past := time.Now().UTC().Add(-time.Hour)
	_, err := suite.storage.DumpLink(context.Background(), modelstorage.NewLinkEntry{
		Alias:     "staleLink",
		URL:       "https://example.com",
		ExpiresAt: &past,
	})
	assert.NoError(suite.T(), err)

	res, err := suite.client.Get(suite.ts.URL + "/staleLink")
	assert.NoError(suite.T(), err)
	res.Body.Close()
	assert.Equal(suite.T(), http.StatusGone, res.StatusCode)
}

func (suite *ServerTestSuite) TestHandleUnlockURL() {
	resData, code := suite.shorten(modeldto.RequestURL{URL: "https://example.com/secret", Password: "letMeIn"})
	assert.Equal(suite.T(), http.StatusCreated, code)

	res, err := suite.client.Get(suite.ts.URL + "/" + resData.Alias)
	assert.NoError(suite.T(), err)
	res.Body.Close()
	assert.Equal(suite.T(), http.StatusUnauthorized, res.StatusCode)

	res = suite.postJSON("/unlock/"+resData.Alias, modeldto.RequestPassword{Password: "wrong"})
	res.Body.Close()
	assert.Equal(suite.T(), http.StatusUnauthorized, res.StatusCode)

	res = suite.postJSON("/unlock/"+resData.Alias, modeldto.RequestPassword{Password: "letMeIn"})
	defer res.Body.Close()
	assert.Equal(suite.T(), http.StatusOK, res.StatusCode)
	var unlocked modeldto.ResponseResolvedURL
	assert.NoError(suite.T(), json.NewDecoder(res.Body).Decode(&unlocked))
	assert.Equal(suite.T(), "https://example.com/secret", unlocked.URL)
}

func (suite *ServerTestSuite) TestCollectionLifecycle() {
	urls := []string{"https://a.example.com", "https://b.example.com", "https://c.example.com"}
	res := suite.postJSON("/api/collection", modeldto.RequestCollection{URLs: urls})
	assert.Equal(suite.T(), http.StatusCreated, res.StatusCode)
	var created modeldto.ResponseCollection
	assert.NoError(suite.T(), json.NewDecoder(res.Body).Decode(&created))
	res.Body.Close()

	res, err := suite.client.Get(suite.ts.URL + "/collection/" + created.Alias)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, res.StatusCode)
	var items []modeldto.ResponseCollectionItem
	assert.NoError(suite.T(), json.NewDecoder(res.Body).Decode(&items))
	res.Body.Close()
	assert.Len(suite.T(), items, 3)
	for i, item := range items {
		assert.Equal(suite.T(), i, item.Position)
		assert.Equal(suite.T(), urls[i], item.URL)
	}

	res, err = suite.client.Get(suite.ts.URL + "/collection/" + created.Alias + "/1")
	assert.NoError(suite.T(), err)
	res.Body.Close()
	assert.Equal(suite.T(), http.StatusTemporaryRedirect, res.StatusCode)
	assert.Equal(suite.T(), urls[1], res.Header.Get("Location"))

	res = suite.postJSON("/api/collection", modeldto.RequestCollection{URLs: nil})
	res.Body.Close()
	assert.Equal(suite.T(), http.StatusBadRequest, res.StatusCode)
}

func (suite *ServerTestSuite) TestSessionOwnedURLs() {
	userID := suite.openSession()
	assert.NotEmpty(suite.T(), userID)

	resData, code := suite.shorten(modeldto.RequestURL{URL: "https://example.com/mine"})
	assert.Equal(suite.T(), http.StatusCreated, code)

	res, err := suite.client.Get(suite.ts.URL + "/api/user/urls")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, res.StatusCode)
	var owned []modeldto.ResponseFullURL
	assert.NoError(suite.T(), json.NewDecoder(res.Body).Decode(&owned))
	res.Body.Close()
	assert.Len(suite.T(), owned, 1)
	assert.Equal(suite.T(), "https://example.com/mine", owned[0].URL)

	req, err := http.NewRequest(http.MethodDelete, suite.ts.URL+"/api/user/urls/"+resData.Alias, nil)
	assert.NoError(suite.T(), err)
	res, err = suite.client.Do(req)
	assert.NoError(suite.T(), err)
	res.Body.Close()
	assert.Equal(suite.T(), http.StatusNoContent, res.StatusCode)

	res, err = suite.client.Get(suite.ts.URL + "/" + resData.Alias)
	assert.NoError(suite.T(), err)
	res.Body.Close()
	assert.Equal(suite.T(), http.StatusNotFound, res.StatusCode)
}

func (suite *ServerTestSuite) TestAnonymousCannotListOrDelete() {
	res, err := suite.client.Get(suite.ts.URL + "/api/user/urls")
	assert.NoError(suite.T(), err)
	res.Body.Close()
	assert.Equal(suite.T(), http.StatusUnauthorized, res.StatusCode)

	req, err := http.NewRequest(http.MethodDelete, suite.ts.URL+"/api/user/urls/someAlias", nil)
	assert.NoError(suite.T(), err)
	res, err = suite.client.Do(req)
	assert.NoError(suite.T(), err)
	res.Body.Close()
	assert.Equal(suite.T(), http.StatusUnauthorized, res.StatusCode)
}

func (suite *ServerTestSuite) TestHandleGetURLStats() {
	suite.openSession()
	resData, code := suite.shorten(modeldto.RequestURL{URL: "https://example.com/tracked"})
	assert.Equal(suite.T(), http.StatusCreated, code)

	res, err := suite.client.Get(suite.ts.URL + "/" + resData.Alias)
	assert.NoError(suite.T(), err)
	res.Body.Close()
	assert.Equal(suite.T(), http.StatusTemporaryRedirect, res.StatusCode)

	// hit recording is asynchronous, poll until the daily row appears
	assert.Eventually(suite.T(), func() bool {
		res, err := suite.client.Get(suite.ts.URL + "/api/links/" + resData.Alias + "/stats")
		if err != nil || res.StatusCode != http.StatusOK {
			return false
		}
		var dailyMetrics []modeldto.ResponseDailyMetric
		err = json.NewDecoder(res.Body).Decode(&dailyMetrics)
		res.Body.Close()
		return err == nil && len(dailyMetrics) == 1 && dailyMetrics[0].Hits == 1
	}, 2*time.Second, 20*time.Millisecond)
}

func (suite *ServerTestSuite) TestHandleGetURLStats_NotOwner() {
	resData, code := suite.shorten(modeldto.RequestURL{URL: "https://example.com/other"})
	assert.Equal(suite.T(), http.StatusCreated, code)

	suite.openSession()
	res, err := suite.client.Get(suite.ts.URL + "/api/links/" + resData.Alias + "/stats")
	assert.NoError(suite.T(), err)
	res.Body.Close()
	assert.Equal(suite.T(), http.StatusForbidden, res.StatusCode)
}

func (suite *ServerTestSuite) TestHandleGetRecent() {
	for _, u := range []string{"https://one.example.com", "https://two.example.com"} {
		_, code := suite.shorten(modeldto.RequestURL{URL: u})
		assert.Equal(suite.T(), http.StatusCreated, code)
	}
	res, err := suite.client.Get(suite.ts.URL + "/api/recent")
	assert.NoError(suite.T(), err)
	defer res.Body.Close()
	assert.Equal(suite.T(), http.StatusOK, res.StatusCode)
	var recent []string
	assert.NoError(suite.T(), json.NewDecoder(res.Body).Decode(&recent))
	assert.Equal(suite.T(), []string{"https://two.example.com", "https://one.example.com"}, recent)
}

func (suite *ServerTestSuite) TestHandlePingDB() {
	res, err := suite.client.Get(suite.ts.URL + "/ping")
	assert.NoError(suite.T(), err)
	res.Body.Close()
	assert.Equal(suite.T(), http.StatusOK, res.StatusCode)
}
