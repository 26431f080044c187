package web

import (
	"net/http"
	"strconv"

	"door-quoter/internal/app"
	"door-quoter/internal/core"
	"door-quoter/internal/pricing"

	"github.com/shopspring/decimal"
)

// catalog handles GET /api/catalog.
func (h *Handler) catalog(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetCatalog(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// panelOptions handles GET /api/panel-options?family=bifold&width=144&current=4.
func (h *Handler) panelOptions(w http.ResponseWriter, r *http.Request) {
	family := r.URL.Query().Get("family")
	if family == "" {
		writeError(w, r, "family is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	width, err := strconv.ParseFloat(r.URL.Query().Get("width"), 64)
	if err != nil {
		writeError(w, r, "width must be a number of inches", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	current := 0
	if c := r.URL.Query().Get("current"); c != "" {
		if current, err = strconv.Atoi(c); err != nil {
			writeError(w, r, "current must be a panel count", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
	}

	result, err := h.svc.GetPanelOptions(r.Context(), family, width, current)
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	writeJSON(w, result)
}

// quoteBody is the wire shape shared by preview and submit.
// Body: { customer, items, install_option?, delivery_option?, installation_cost?,
// delivery_cost?, tax_rate?, discounts?, prefix? }
type quoteBody struct {
	Customer         core.Customer      `json:"customer"`
	Items            []core.QuoteItem   `json:"items"`
	InstallOption    string             `json:"install_option"`
	DeliveryOption   string             `json:"delivery_option"`
	InstallationCost decimal.Decimal    `json:"installation_cost"`
	DeliveryCost     decimal.Decimal    `json:"delivery_cost"`
	TaxRate          float64            `json:"tax_rate"`
	Discounts        []pricing.Discount `json:"discounts"`
	Prefix           string             `json:"prefix"`
}

// previewQuote handles POST /api/quotes/preview — reprices without saving.
func (h *Handler) previewQuote(w http.ResponseWriter, r *http.Request) {
	var body quoteBody
	if !decodeJSON(w, r, &body) {
		return
	}

	result, err := h.svc.PreviewQuote(r.Context(), core.Quote{
		Customer:         body.Customer,
		Items:            body.Items,
		InstallOption:    body.InstallOption,
		DeliveryOption:   body.DeliveryOption,
		InstallationCost: body.InstallationCost,
		DeliveryCost:     body.DeliveryCost,
		TaxRate:          body.TaxRate,
		Discounts:        body.Discounts,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// submitQuote handles POST /api/quotes — "Save & Email".
func (h *Handler) submitQuote(w http.ResponseWriter, r *http.Request) {
	var body quoteBody
	if !decodeJSON(w, r, &body) {
		return
	}

	result, err := h.svc.SubmitQuote(r.Context(), app.SubmitQuoteRequest{
		Customer:         body.Customer,
		Items:            body.Items,
		InstallOption:    body.InstallOption,
		DeliveryOption:   body.DeliveryOption,
		InstallationCost: body.InstallationCost,
		DeliveryCost:     body.DeliveryCost,
		TaxRate:          body.TaxRate,
		Discounts:        body.Discounts,
		Prefix:           body.Prefix,
	})
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, result)
}

// draftQuote handles POST /api/quotes/draft.
// Body: { text }
func (h *Handler) draftQuote(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	result, err := h.svc.DraftQuote(r.Context(), body.Text)
	if err != nil {
		writeError(w, r, err.Error(), "DRAFT_FAILED", http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, result)
}
