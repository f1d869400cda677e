package web

import (
	"net/http"
	"strconv"

	"finpulse/internal/app"

	"github.com/shopspring/decimal"
)

// dashboardMetrics handles GET /api/metrics/dashboard.
func (h *Handler) dashboardMetrics(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetDashboardMetrics(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// advanceTaxSchedule handles GET /api/metrics/advance-tax?income=&paid=&fy=.
func (h *Handler) advanceTaxSchedule(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	income, err := decimal.NewFromString(q.Get("income"))
	if err != nil {
		writeError(w, r, "income must be a decimal number", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	paid := decimal.Zero
	if p := q.Get("paid"); p != "" {
		if paid, err = decimal.NewFromString(p); err != nil {
			writeError(w, r, "paid must be a decimal number", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
	}

	fy := 0
	if y := q.Get("fy"); y != "" {
		if fy, err = strconv.Atoi(y); err != nil {
			writeError(w, r, "fy must be a year", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
	}

	result, err := h.svc.GetAdvanceTaxSchedule(r.Context(), app.AdvanceTaxRequest{
		EstimatedIncome: income,
		TaxPaidTillDate: paid,
		FYStartYear:     fy,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// cashCycle handles GET /api/metrics/cash-cycle.
func (h *Handler) cashCycle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var req app.CashCycleRequest
	for _, f := range []struct {
		name string
		dst  *int
	}{
		{"inventory_days", &req.InventoryDays},
		{"receivable_days", &req.ReceivableDays},
		{"payable_days", &req.PayableDays},
		{"credit_cycle_days", &req.CreditCycleDays},
	} {
		if v := q.Get(f.name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				writeError(w, r, f.name+" must be an integer", "BAD_REQUEST", http.StatusBadRequest)
				return
			}
			*f.dst = n
		}
	}

	result, err := h.svc.GetCashCycle(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}
