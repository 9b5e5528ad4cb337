package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/KoustavFrost/devconnector/internal/application"
	"github.com/KoustavFrost/devconnector/internal/ports"
)

// Handler is the HTTP adapter entrypoint for the API.
// Keeping only the application dependency here preserves clean adapter boundaries.
type Handler struct {
	service *application.Service
}

// NewHandler constructs an HTTP handler bound to the application service.
func NewHandler(service *application.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "ok")
}

func (h *Handler) readyz(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "ready")
}

func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := bearerTokenFromHeader(r.Header.Get("Authorization"))
		if err != nil {
			writeErrors(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}

		claims, err := h.service.ValidateToken(r.Context(), raw)
		if err != nil {
			status, msg := mapDomainError(err)
			writeErrors(w, status, msg)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyClaims, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	status, msg := mapDomainError(err)
	logHTTPOperationError(r.Context(), operation, status, msg, err)
	writeErrors(w, status, msg)
}

func requireClaims(w http.ResponseWriter, r *http.Request) (ports.AuthClaims, bool) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeErrors(w, http.StatusUnauthorized, "No token, authorization denied")
		return ports.AuthClaims{}, false
	}
	return claims, true
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON value")
	}
	return nil
}

// parseDate accepts the YYYY-MM-DD form used by clients alongside RFC3339.
func parseDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if t, err := time.Parse("2006-01-02", trimmed); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func readIP(r *http.Request) string {
	if xff := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	host := strings.TrimSpace(r.RemoteAddr)
	if idx := strings.LastIndex(host, ":"); idx > 0 {
		return host[:idx]
	}
	return host
}
