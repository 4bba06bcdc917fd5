package resolver_http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/charleschow/loteca-pipeline/internal/core/resolver"
	"github.com/charleschow/loteca-pipeline/internal/telemetry"
)

const maxBodyBytes = 1 << 20

// Handler exposes the team resolver over HTTP.
//
// Routes:
//
//	GET  /health        -> {"ok":true,"aliases":N} (distinct canonical teams)
//	GET  /resolve?name= -> one resolution
//	POST /bulk_resolve  -> {"names":[...]} in, {"results":[...]} out
//	GET  /ws            -> one JSON resolution per text frame
//	GET  /metrics       -> Prometheus text format
type Handler struct {
	svc *resolver.Service
	ws  *wsHub
}

func NewHandler(svc *resolver.Service) *Handler {
	return &Handler{svc: svc, ws: newWSHub(svc)}
}

// RegisterRoutes wires HTTP routes onto the provided mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("GET /resolve", h.resolve)
	mux.HandleFunc("POST /bulk_resolve", h.bulkResolve)
	mux.HandleFunc("GET /ws", h.ws.handle)
	mux.Handle("GET /metrics", telemetry.Handler())
}

type bulkRequest struct {
	Names []string `json:"names"`
}

type bulkResponse struct {
	Results []resolver.Result `json:"results"`
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "aliases": h.svc.Aliases()})
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if strings.TrimSpace(name) == "" {
		writeError(w, http.StatusBadRequest, "missing ?name= query param")
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Resolve(r.Context(), name))
}

func (h *Handler) bulkResolve(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	results := h.svc.ResolveMany(r.Context(), req.Names)
	telemetry.Infof("resolver: bulk_resolve names=%d", len(results))
	writeJSON(w, http.StatusOK, bulkResponse{Results: results})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		telemetry.Warnf("resolver: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
