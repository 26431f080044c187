package web

import (
	"net/http"
	"strconv"
	"time"

	"door-quoter/internal/app"

	"github.com/go-chi/chi/v5"
)

// quoteRef extracts the {ref} URL parameter (numeric ID or quote number).
func quoteRef(r *http.Request) string {
	return chi.URLParam(r, "ref")
}

// listQuotes handles GET /api/admin/quotes.
// Query: status?, sales_rep?, tag?, q?, from?, to? (dates as YYYY-MM-DD).
func (h *Handler) listQuotes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := app.ListQuotesRequest{
		Status: q.Get("status"),
		Tag:    q.Get("tag"),
		Search: q.Get("q"),
	}
	if rep := q.Get("sales_rep"); rep != "" {
		id, err := strconv.Atoi(rep)
		if err != nil {
			writeError(w, r, "sales_rep must be an ID", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		req.SalesRepID = &id
	}
	var err error
	if req.From, err = parseDateParam(q.Get("from")); err != nil {
		writeError(w, r, "from must be YYYY-MM-DD", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if req.To, err = parseDateParam(q.Get("to")); err != nil {
		writeError(w, r, "to must be YYYY-MM-DD", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.ListQuotes(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Quotes)
}

// getQuote handles GET /api/admin/quotes/{ref}.
func (h *Handler) getQuote(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetQuote(r.Context(), quoteRef(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Quote)
}

// updateQuoteStatus handles PUT /api/admin/quotes/{ref}/status.
// Body: { status }
func (h *Handler) updateQuoteStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Status == "" {
		writeError(w, r, "status is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.UpdateQuoteStatus(r.Context(), quoteRef(r), body.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Quote)
}

// updateQuoteTags handles PUT /api/admin/quotes/{ref}/tags.
// Body: { tags: [] }
func (h *Handler) updateQuoteTags(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Tags []string `json:"tags"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	result, err := h.svc.UpdateQuoteTags(r.Context(), quoteRef(r), body.Tags)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Quote)
}

// assignSalesRep handles PUT /api/admin/quotes/{ref}/sales-rep.
// Body: { sales_rep_id } — null clears the assignment.
func (h *Handler) assignSalesRep(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SalesRepID *int `json:"sales_rep_id"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	result, err := h.svc.AssignSalesRep(r.Context(), quoteRef(r), body.SalesRepID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Quote)
}

// setFollowUpDate handles PUT /api/admin/quotes/{ref}/follow-up.
// Body: { follow_up_date } as YYYY-MM-DD — null clears the reminder.
func (h *Handler) setFollowUpDate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FollowUpDate *string `json:"follow_up_date"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	var date *time.Time
	if body.FollowUpDate != nil {
		var err error
		if date, err = parseDateParam(*body.FollowUpDate); err != nil || date == nil {
			writeError(w, r, "follow_up_date must be YYYY-MM-DD", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
	}

	result, err := h.svc.SetFollowUpDate(r.Context(), quoteRef(r), date)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Quote)
}

// deleteQuote handles DELETE /api/admin/quotes/{ref} — soft delete.
func (h *Handler) deleteQuote(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteQuote(r.Context(), quoteRef(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listDeletedQuotes handles GET /api/admin/quotes/deleted.
func (h *Handler) listDeletedQuotes(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListDeletedQuotes(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Quotes)
}

// restoreQuote handles POST /api/admin/quotes/deleted/{id}/restore.
func (h *Handler) restoreQuote(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "id must be numeric", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.RestoreQuote(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Quote)
}

// purgeDeletedQuotes handles POST /api/admin/quotes/deleted/purge.
func (h *Handler) purgeDeletedQuotes(w http.ResponseWriter, r *http.Request) {
	purged, err := h.svc.PurgeExpiredQuotes(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	type response struct {
		Purged int `json:"purged"`
	}
	writeJSON(w, response{Purged: purged})
}

// quotesByReferral handles GET /api/admin/referrals/{code}/quotes.
func (h *Handler) quotesByReferral(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.SearchByReferralCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Quotes)
}

// parseDateParam parses an optional YYYY-MM-DD value. Empty means unset.
func parseDateParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
