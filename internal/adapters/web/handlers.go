package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"door-quoter/internal/app"

	"github.com/go-chi/chi/v5"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc       app.ApplicationService
	router    chi.Router
	jwtSecret string
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins, jwtSecret string) http.Handler {
	h := &Handler{
		svc:       svc,
		jwtSecret: jwtSecret,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))
	r.Use(RequestBodyLimit(1 << 20)) // 1 MB

	// ── Health (public) ───────────────────────────────────────────────────────
	r.Get("/api/health", h.health)

	// ── Auth (public API) ─────────────────────────────────────────────────────
	r.Post("/api/auth/login", h.login)
	r.Post("/api/auth/logout", h.logout)

	// ── Configurator (public: the customer-facing quote builder) ──────────────
	r.Get("/api/catalog", h.catalog)
	r.Get("/api/panel-options", h.panelOptions)
	r.Post("/api/quotes/preview", h.previewQuote)
	r.Post("/api/quotes", h.submitQuote)
	r.Post("/api/quotes/draft", h.draftQuote)

	// ── Admin API (dashboard; 401 JSON if unauthenticated) ────────────────────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)

		r.Get("/api/auth/me", h.me)

		r.Get("/api/admin/quotes", h.listQuotes)
		r.Get("/api/admin/quotes/deleted", h.listDeletedQuotes)
		r.Post("/api/admin/quotes/deleted/purge", h.purgeDeletedQuotes)
		r.Post("/api/admin/quotes/deleted/{id}/restore", h.restoreQuote)
		r.Get("/api/admin/quotes/{ref}", h.getQuote)
		r.Delete("/api/admin/quotes/{ref}", h.deleteQuote)
		r.Put("/api/admin/quotes/{ref}/status", h.updateQuoteStatus)
		r.Put("/api/admin/quotes/{ref}/tags", h.updateQuoteTags)
		r.Put("/api/admin/quotes/{ref}/sales-rep", h.assignSalesRep)
		r.Put("/api/admin/quotes/{ref}/follow-up", h.setFollowUpDate)
		r.Get("/api/admin/referrals/{code}/quotes", h.quotesByReferral)

		r.Get("/api/admin/sales-reps", h.listSalesReps)
		r.Post("/api/admin/sales-reps", h.createSalesRep)
		r.Put("/api/admin/sales-reps/{id}", h.updateSalesRep)
		r.Put("/api/admin/sales-reps/{id}/active", h.setSalesRepActive)
	})

	h.router = r
	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
