package web

import (
	"net/http"
	"strconv"

	"door-quoter/internal/app"

	"github.com/go-chi/chi/v5"
)

// listSalesReps handles GET /api/admin/sales-reps?active=true.
func (h *Handler) listSalesReps(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	result, err := h.svc.ListSalesReps(r.Context(), activeOnly)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.SalesReps)
}

// createSalesRep handles POST /api/admin/sales-reps.
// Body: { name, email?, phone? }
func (h *Handler) createSalesRep(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Name == "" {
		writeError(w, r, "name is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.CreateSalesRep(r.Context(), app.SalesRepRequest{
		Name:  body.Name,
		Email: body.Email,
		Phone: body.Phone,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, result.SalesRep)
}

// updateSalesRep handles PUT /api/admin/sales-reps/{id}.
// Body: { name, email?, phone? }
func (h *Handler) updateSalesRep(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "id must be numeric", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	result, err := h.svc.UpdateSalesRep(r.Context(), id, app.SalesRepRequest{
		Name:  body.Name,
		Email: body.Email,
		Phone: body.Phone,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.SalesRep)
}

// setSalesRepActive handles PUT /api/admin/sales-reps/{id}/active.
// Body: { active }
func (h *Handler) setSalesRepActive(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "id must be numeric", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	var body struct {
		Active bool `json:"active"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	if err := h.svc.SetSalesRepActive(r.Context(), id, body.Active); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
