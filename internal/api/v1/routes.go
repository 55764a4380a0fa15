// Package v1 provides the sync and health handlers of the hydrosync API.
package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aquatrack/hydrosync/internal/api/common"
	pkgsync "github.com/aquatrack/hydrosync/internal/sync"
	"github.com/aquatrack/hydrosync/internal/sync/coordinator"
	"github.com/aquatrack/hydrosync/internal/versions"
)

// ReadinessChecker reports whether the stores behind the API are reachable
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// LastSyncResponse is the body of GET /v1/sync/last
type LastSyncResponse struct {
	LastSyncAt *time.Time `json:"lastSyncAt"`
}

// Routes holds the sync handlers
type Routes struct {
	coordinator coordinator.Coordinator
}

// Router creates the /v1/sync router. Every route except the status stream
// is bounded by requestTimeout when it is positive.
func Router(c coordinator.Coordinator, requestTimeout time.Duration) http.Handler {
	routes := &Routes{coordinator: c}

	r := chi.NewRouter()
	r.Get("/status/stream", routes.streamStatus)

	r.Group(func(r chi.Router) {
		if requestTimeout > 0 {
			r.Use(middleware.Timeout(requestTimeout))
		}
		r.Get("/status", routes.getStatus)
		r.Get("/last", routes.getLastSync)
		r.Post("/", routes.syncAll)
		r.Post("/download", routes.downloadAll)
		r.Post("/upload", routes.uploadAll)
	})

	return r
}

// getStatus handles GET /v1/sync/status
func (rr *Routes) getStatus(w http.ResponseWriter, _ *http.Request) {
	common.WriteJSONResponse(w, rr.coordinator.CurrentStatus(), http.StatusOK)
}

// getLastSync handles GET /v1/sync/last
func (rr *Routes) getLastSync(w http.ResponseWriter, r *http.Request) {
	last, err := rr.coordinator.LastSyncTime(r.Context())
	if err != nil {
		slog.Error("Failed to read last sync time", "error", err)
		common.WriteErrorResponse(w, "Failed to read last sync time", http.StatusBadGateway)
		return
	}
	common.WriteJSONResponse(w, LastSyncResponse{LastSyncAt: last}, http.StatusOK)
}

// syncAll handles POST /v1/sync
func (rr *Routes) syncAll(w http.ResponseWriter, r *http.Request) {
	rr.runOperation(w, r, rr.coordinator.SyncAll)
}

// downloadAll handles POST /v1/sync/download
func (rr *Routes) downloadAll(w http.ResponseWriter, r *http.Request) {
	rr.runOperation(w, r, rr.coordinator.DownloadAll)
}

// uploadAll handles POST /v1/sync/upload
func (rr *Routes) uploadAll(w http.ResponseWriter, r *http.Request) {
	rr.runOperation(w, r, rr.coordinator.UploadAll)
}

func (*Routes) runOperation(
	w http.ResponseWriter,
	r *http.Request,
	op func(context.Context) (*pkgsync.Report, error),
) {
	report, err := op(r.Context())
	if err != nil {
		writeSyncError(w, err)
		return
	}
	common.WriteJSONResponse(w, report, http.StatusOK)
}

// writeSyncError maps the sync error kinds to status codes
func writeSyncError(w http.ResponseWriter, err error) {
	kind := pkgsync.KindOf(err)

	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, pkgsync.ErrNotAuthenticated):
		code = http.StatusUnauthorized
	case kind == pkgsync.KindRemoteUnavailable:
		code = http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		code = http.StatusGatewayTimeout
	}

	message := err.Error()
	var syncErr *pkgsync.Error
	if errors.As(err, &syncErr) && syncErr.Message != "" {
		message = syncErr.Message
	}
	common.WriteJSONResponse(w, common.ErrorResponse{Error: message, Kind: string(kind)}, code)
}

// streamStatus handles GET /v1/sync/status/stream as server-sent events.
// Every frame carries the latest status; intermediate ones may be skipped.
func (rr *Routes) streamStatus(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	// the stream outlives the server write timeout
	if err := rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		slog.Warn("Failed to clear write deadline for status stream", "error", err)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	for s := range rr.coordinator.ObserveSyncStatus(r.Context()) {
		data, err := json.Marshal(s)
		if err != nil {
			slog.Error("Failed to encode sync status", "error", err)
			return
		}
		if _, err := fmt.Fprintf(w, "event: status\ndata: %s\n\n", data); err != nil {
			return
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}

// HealthRouter creates a router for health check endpoints
func HealthRouter(checker ReadinessChecker) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", healthHandler)
	r.Get("/readiness", readinessHandler(checker))
	r.Get("/version", versionHandler)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	common.WriteJSONResponse(w, map[string]string{"status": "healthy"}, http.StatusOK)
}

func readinessHandler(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			if err := checker.CheckReadiness(r.Context()); err != nil {
				common.WriteErrorResponse(w, "not ready: "+err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		common.WriteJSONResponse(w, map[string]string{"status": "ready"}, http.StatusOK)
	}
}

func versionHandler(w http.ResponseWriter, _ *http.Request) {
	common.WriteJSONResponse(w, versions.GetVersionInfo(), http.StatusOK)
}
