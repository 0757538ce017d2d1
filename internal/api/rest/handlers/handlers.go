// Package handlers provides http.HandlerFunc handler functions to be used for endpoints.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/google/uuid"

	"github.com/danilovkiri/dk_go_link_resolver/internal/api/rest/middleware"
	"github.com/danilovkiri/dk_go_link_resolver/internal/api/rest/modeldto"
	"github.com/danilovkiri/dk_go_link_resolver/internal/config"
	"github.com/danilovkiri/dk_go_link_resolver/internal/service/collections"
	serviceErrors "github.com/danilovkiri/dk_go_link_resolver/internal/service/errors"
	"github.com/danilovkiri/dk_go_link_resolver/internal/service/resolver"
	"github.com/danilovkiri/dk_go_link_resolver/internal/service/session"
	storageErrors "github.com/danilovkiri/dk_go_link_resolver/internal/storage/errors"
)

const handlerTimeout = 500 * time.Millisecond

const dayLayout = "2006-01-02"

// LinkHandler defines data structure handling and provides support for adding new implementations.
type LinkHandler struct {
	processor   resolver.Processor
	collections collections.Processor
	registrar   session.Registrar
	serverCfg   *config.ServerConfig
}

// InitLinkHandler initializes a LinkHandler object and sets its attributes.
func InitLinkHandler(processor resolver.Processor, collectionsProcessor collections.Processor, registrar session.Registrar, serverCfg *config.ServerConfig) (*LinkHandler, error) {
	if processor == nil || collectionsProcessor == nil || registrar == nil || serverCfg == nil {
		return nil, fmt.Errorf("nil dependency was passed to link handler initializer")
	}
	return &LinkHandler{
		processor:   processor,
		collections: collectionsProcessor,
		registrar:   registrar,
		serverCfg:   serverCfg,
	}, nil
}

// writeServiceError maps service-layer error types onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	log.Println(op+":", err)
	var (
		invalidURL       *serviceErrors.InvalidURLError
		invalidAlias     *serviceErrors.InvalidAliasError
		emptyCollection  *serviceErrors.EmptyCollectionError
		aliasTaken       *serviceErrors.AliasTakenError
		exhausted        *serviceErrors.AllocationExhaustedError
		notFound         *serviceErrors.NotFoundError
		expired          *serviceErrors.ExpiredError
		passwordRequired *serviceErrors.PasswordRequiredError
		wrongPassword    *serviceErrors.WrongPasswordError
		notOwner         *serviceErrors.NotOwnerError
		timeout          *storageErrors.ContextTimeoutExceededError
	)
	switch {
	case errors.As(err, &invalidURL), errors.As(err, &invalidAlias), errors.As(err, &emptyCollection):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &aliasTaken):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.As(err, &exhausted):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	case errors.As(err, &notFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &expired):
		http.Error(w, err.Error(), http.StatusGone)
	case errors.As(err, &passwordRequired), errors.As(err, &wrongPassword):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.As(err, &notOwner):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.As(err, &timeout):
		w.WriteHeader(http.StatusGatewayTimeout)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	resBody, err := json.Marshal(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(resBody)
}

func (h *LinkHandler) shortURL(alias string) string {
	return h.serverCfg.BaseURL + "/" + alias
}

// sessionUserID extracts the requester identity stashed by the cookie middleware, empty when anonymous.
func sessionUserID(r *http.Request) string {
	userID, _ := middleware.UserID(r.Context())
	return userID
}

// HandlePostURL stores the original URL from a plain-text body under a generated alias.
func (h *LinkHandler) HandlePostURL() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// set context timeout to 500 ms for timing DB operations
		ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
		defer cancel()
		b, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Println("POST request detected for", string(b))
		alias, err := h.processor.Shorten(ctx, string(b), "", "", sessionUserID(r), 0)
		if err != nil {
			writeServiceError(w, "HandlePostURL", err)
			return
		}
		log.Println("HandlePostURL: stored", string(b), "as", alias)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(h.shortURL(alias)))
	}
}

// JSONHandlePostURL accepts JSON as {"url":"<url>","alias":"...","password":"...","expire_after_days":N}
// and provides the client with the allocated alias.
func (h *LinkHandler) JSONHandlePostURL() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
		defer cancel()
		var post modeldto.RequestURL
		if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Println("JSON POST request detected for", post.URL)
		var expireAfter time.Duration
		if post.ExpireAfterDays > 0 {
			expireAfter = time.Duration(post.ExpireAfterDays) * 24 * time.Hour
		}
		alias, err := h.processor.Shorten(ctx, post.URL, post.Alias, post.Password, sessionUserID(r), expireAfter)
		if err != nil {
			writeServiceError(w, "JSONHandlePostURL", err)
			return
		}
		log.Println("JSONHandlePostURL: stored", post.URL, "as", alias)
		writeJSON(w, http.StatusCreated, modeldto.ResponseURL{ShortURL: h.shortURL(alias), Alias: alias})
	}
}

// HandleGetURL provides the client with a redirect to the original URL accessed by its alias.
// Password-protected links answer 401 here and resolve via the unlock endpoint instead.
func (h *LinkHandler) HandleGetURL() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
		defer cancel()
		alias := chi.URLParam(r, "alias")
		log.Println("GET request detected for", alias)
		URL, err := h.processor.Resolve(ctx, alias, "")
		if err != nil {
			writeServiceError(w, "HandleGetURL", err)
			return
		}
		log.Println("HandleGetURL: retrieved URL", URL)
		w.Header().Set("Location", URL)
		w.WriteHeader(http.StatusTemporaryRedirect)
	}
}

// HandleUnlockURL resolves a password-protected link, answering the destination URL as JSON
// instead of a redirect so that clients do not leak passwords into redirect chains.
func (h *LinkHandler) HandleUnlockURL() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
		defer cancel()
		alias := chi.URLParam(r, "alias")
		var post modeldto.RequestPassword
		if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		URL, err := h.processor.Resolve(ctx, alias, post.Password)
		if err != nil {
			writeServiceError(w, "HandleUnlockURL", err)
			return
		}
		writeJSON(w, http.StatusOK, modeldto.ResponseResolvedURL{URL: URL})
	}
}

// JSONHandlePostCollection stores an ordered group of URLs under a single alias.
func (h *LinkHandler) JSONHandlePostCollection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
		defer cancel()
		var post modeldto.RequestCollection
		if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		alias, err := h.collections.Create(ctx, post.Alias, post.URLs, sessionUserID(r))
		if err != nil {
			writeServiceError(w, "JSONHandlePostCollection", err)
			return
		}
		log.Println("JSONHandlePostCollection: stored", len(post.URLs), "URLs as", alias)
		writeJSON(w, http.StatusCreated, modeldto.ResponseCollection{ShortURL: h.serverCfg.BaseURL + "/collection/" + alias, Alias: alias})
	}
}

// HandleGetCollection lists the collection items in their stored order.
func (h *LinkHandler) HandleGetCollection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
		defer cancel()
		alias := chi.URLParam(r, "alias")
		items, err := h.collections.Get(ctx, alias)
		if err != nil {
			writeServiceError(w, "HandleGetCollection", err)
			return
		}
		resData := make([]modeldto.ResponseCollectionItem, 0, len(items))
		for _, item := range items {
			resData = append(resData, modeldto.ResponseCollectionItem{Position: item.Position, URL: item.URL})
		}
		writeJSON(w, http.StatusOK, resData)
	}
}

// HandleGetCollectionItem redirects to a single collection member addressed by its position.
func (h *LinkHandler) HandleGetCollectionItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
		defer cancel()
		alias := chi.URLParam(r, "alias")
		position, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			http.Error(w, "collection index must be an integer", http.StatusBadRequest)
			return
		}
		URL, err := h.collections.GetItem(ctx, alias, position)
		if err != nil {
			writeServiceError(w, "HandleGetCollectionItem", err)
			return
		}
		w.Header().Set("Location", URL)
		w.WriteHeader(http.StatusTemporaryRedirect)
	}
}

// HandleDeleteCollection removes an owned collection together with its items.
func (h *LinkHandler) HandleDeleteCollection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
		defer cancel()
		userID := sessionUserID(r)
		if userID == "" {
			http.Error(w, "session required", http.StatusUnauthorized)
			return
		}
		alias := chi.URLParam(r, "alias")
		if err := h.collections.Delete(ctx, alias, userID); err != nil {
			writeServiceError(w, "HandleDeleteCollection", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleGetURLsByUserID provides the client with all URLs shortened within the current session.
func (h *LinkHandler) HandleGetURLsByUserID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
		defer cancel()
		userID := sessionUserID(r)
		if userID == "" {
			http.Error(w, "session required", http.StatusUnauthorized)
			return
		}
		URLs, err := h.processor.ListByOwner(ctx, userID)
		if err != nil {
			writeServiceError(w, "HandleGetURLsByUserID", err)
			return
		}
		if len(URLs) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		resData := make([]modeldto.ResponseFullURL, 0, len(URLs))
		for _, fullURL := range URLs {
			resData = append(resData, modeldto.ResponseFullURL{URL: fullURL.URL, ShortURL: h.shortURL(fullURL.Alias)})
		}
		writeJSON(w, http.StatusOK, resData)
	}
}

// HandleDeleteURL removes an owned link, its metrics rows stay until partition retirement.
func (h *LinkHandler) HandleDeleteURL() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
		defer cancel()
		userID := sessionUserID(r)
		if userID == "" {
			http.Error(w, "session required", http.StatusUnauthorized)
			return
		}
		alias := chi.URLParam(r, "alias")
		if err := h.processor.Delete(ctx, alias, userID); err != nil {
			writeServiceError(w, "HandleDeleteURL", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleGetURLStats provides owners with per-day hit counts for one link over a date window.
// Both bounds are inclusive days, `to` defaults to today and `from` to thirty days before `to`.
func (h *LinkHandler) HandleGetURLStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
		defer cancel()
		userID := sessionUserID(r)
		if userID == "" {
			http.Error(w, "session required", http.StatusUnauthorized)
			return
		}
		alias := chi.URLParam(r, "alias")
		to := time.Now().UTC().Truncate(24 * time.Hour)
		if v := r.URL.Query().Get("to"); v != "" {
			parsed, err := time.Parse(dayLayout, v)
			if err != nil {
				http.Error(w, "to must be formatted as "+dayLayout, http.StatusBadRequest)
				return
			}
			to = parsed
		}
		from := to.AddDate(0, 0, -30)
		if v := r.URL.Query().Get("from"); v != "" {
			parsed, err := time.Parse(dayLayout, v)
			if err != nil {
				http.Error(w, "from must be formatted as "+dayLayout, http.StatusBadRequest)
				return
			}
			from = parsed
		}
		dailyMetrics, err := h.processor.Stats(ctx, alias, userID, from, to)
		if err != nil {
			writeServiceError(w, "HandleGetURLStats", err)
			return
		}
		resData := make([]modeldto.ResponseDailyMetric, 0, len(dailyMetrics))
		for _, metric := range dailyMetrics {
			resData = append(resData, modeldto.ResponseDailyMetric{
				Day:        metric.Day.Format(dayLayout),
				Hits:       metric.Hits,
				LastAccess: metric.LastAccess.Format(time.RFC3339),
			})
		}
		writeJSON(w, http.StatusOK, resData)
	}
}

// HandleGetRecent lists destination URLs of the most recently created links.
func (h *LinkHandler) HandleGetRecent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
		defer cancel()
		URLs, err := h.processor.Recent(ctx, 10)
		if err != nil {
			writeServiceError(w, "HandleGetRecent", err)
			return
		}
		writeJSON(w, http.StatusOK, URLs)
	}
}

// HandlePostSession issues a session cookie binding subsequent requests to one user identity.
// An existing valid session is reused so that repeated calls do not orphan owned links.
func (h *LinkHandler) HandlePostSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := sessionUserID(r)
		if userID == "" {
			userID = uuid.New().String()
		}
		token := h.registrar.Issue(userID)
		http.SetCookie(w, &http.Cookie{
			Name:  middleware.CookieName,
			Value: token,
			Path:  "/",
		})
		writeJSON(w, http.StatusCreated, modeldto.ResponseSession{UserID: userID})
	}
}

// HandlePingDB provides the client with the storage connection status.
func (h *LinkHandler) HandlePingDB() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.processor.PingDB(); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
