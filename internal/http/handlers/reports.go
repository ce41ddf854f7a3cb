package handlers

import (
	"net/http"
	"strings"

	"github.com/hongminglow/pos-audit-be/internal/apperr"
	"github.com/hongminglow/pos-audit-be/internal/http/respond"
	"github.com/hongminglow/pos-audit-be/internal/query"
	"github.com/hongminglow/pos-audit-be/internal/report"
)

// ReportHandler serves the listing endpoints and the interface report.
type ReportHandler struct {
	svc *report.Service
}

func NewReportHandler(svc *report.Service) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// Register wires the report routes into a ServeMux.
func (h *ReportHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/sales", h.listing(query.Sales))
	mux.HandleFunc("/api/sales_items", h.listing(query.SaleItems))
	mux.HandleFunc("/api/stocks", h.listing(query.Stocks))
	mux.HandleFunc("/api/interface", h.handleInterface)
}

func (h *ReportHandler) listing(l query.Listing) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		q := r.URL.Query()
		f := query.Filter{
			Search:    strings.TrimSpace(q.Get("search")),
			StartDate: strings.TrimSpace(q.Get("startDate")),
			EndDate:   strings.TrimSpace(q.Get("endDate")),
		}
		rows, err := h.svc.Listing(r.Context(), l, f)
		if err != nil {
			writeReportError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, rows)
	}
}

func (h *ReportHandler) handleInterface(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	dr := query.DateRange{
		Start: strings.TrimSpace(q.Get("startDate")),
		End:   strings.TrimSpace(q.Get("endDate")),
	}
	rep, err := h.svc.Interface(r.Context(), dr)
	if err != nil {
		writeReportError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, rep)
}

func writeReportError(w http.ResponseWriter, err error) {
	respond.Text(w, apperr.Status(apperr.KindOf(err)), "Server error")
}
