package handler

import (
	"net/http"
	"strconv"

	"invdesk/internal/service"
)

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reports.Dashboard(r.Context())
	if err != nil {
		writeError(w, err, "failed to load dashboard")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) SalesReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))
	lq := service.ListQuery{
		Page:     page,
		PageSize: pageSize,
		DateFrom: q.Get("dateFrom"),
		DateTo:   q.Get("dateTo"),
	}

	if format := q.Get("format"); format != "" {
		bin, err := h.reports.ExportSales(r.Context(), lq, format)
		if err != nil {
			writeError(w, err, "failed to export sales report")
			return
		}
		w.Header().Set("Content-Type", bin.ContentType)
		w.WriteHeader(http.StatusOK)
		w.Write(bin.Data)
		return
	}

	result, err := h.reports.Sales(r.Context(), lq)
	if err != nil {
		writeError(w, err, "failed to load sales report")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type emailReportRequest struct {
	To       string `json:"to"`
	DateFrom string `json:"dateFrom,omitempty"`
	DateTo   string `json:"dateTo,omitempty"`
}

func (h *Handler) EmailSalesReport(w http.ResponseWriter, r *http.Request) {
	var req emailReportRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.reports.EmailSales(r.Context(), req.To, req.DateFrom, req.DateTo); err != nil {
		writeError(w, err, "failed to email sales report")
		return
	}
	writeMessage(w, http.StatusOK, "report sent")
}

func (h *Handler) InventoryReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))
	iq := service.InventoryQuery{
		Range:      q.Get("range"),
		CustomFrom: q.Get("customFrom"),
		CustomTo:   q.Get("customTo"),
		Page:       page,
		PageSize:   pageSize,
	}

	if format := q.Get("format"); format != "" {
		bin, err := h.reports.ExportInventory(r.Context(), iq, format)
		if err != nil {
			writeError(w, err, "failed to export inventory report")
			return
		}
		w.Header().Set("Content-Type", bin.ContentType)
		w.WriteHeader(http.StatusOK)
		w.Write(bin.Data)
		return
	}

	result, err := h.reports.Inventory(r.Context(), iq)
	if err != nil {
		writeError(w, err, "failed to load inventory report")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
