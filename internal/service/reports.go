package service

import (
	"context"
	"net/url"
	"strconv"

	"invdesk/internal/api"
	"invdesk/internal/model"
	"invdesk/internal/validate"
)

// Report generation itself happens server-side; exports come back as
// opaque bytes.
type Reports struct {
	api *api.Client
}

func NewReports(client *api.Client) *Reports {
	return &Reports{api: client}
}

func (s *Reports) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	var stats model.DashboardStats
	if err := s.api.Get(ctx, "/reports/dashboard", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *Reports) Sales(ctx context.Context, q ListQuery) (*model.Page[model.Sale], error) {
	var page model.Page[model.Sale]
	if err := s.api.Get(ctx, "/reports/sales", q.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ExportSales downloads the sales report as pdf or excel.
func (s *Reports) ExportSales(ctx context.Context, q ListQuery, format string) (*api.Binary, error) {
	v := validate.New()
	v.Check(format == "pdf" || format == "excel", "format", "Format must be pdf or excel")
	if err := v.Err(); err != nil {
		return nil, err
	}
	params := q.Values()
	params.Set("format", format)
	return s.api.Download(ctx, "/reports/sales", params)
}

// EmailSales asks the server to generate the sales report and mail it.
func (s *Reports) EmailSales(ctx context.Context, to, dateFrom, dateTo string) error {
	v := validate.New()
	v.Require("to", to, "Recipient email")
	v.Email("to", to)
	if err := v.Err(); err != nil {
		return err
	}

	body := struct {
		To       string `json:"to"`
		DateFrom string `json:"dateFrom,omitempty"`
		DateTo   string `json:"dateTo,omitempty"`
	}{To: to, DateFrom: dateFrom, DateTo: dateTo}

	return s.api.Post(ctx, "/reports/sales/email", body, nil)
}

// InventoryQuery selects the reporting window: a named range, or
// "custom" with explicit bounds.
type InventoryQuery struct {
	Range      string
	CustomFrom string
	CustomTo   string
	Page       int
	PageSize   int
}

func (q InventoryQuery) values() url.Values {
	lq := ListQuery{Page: q.Page, PageSize: q.PageSize}.Normalize()
	params := url.Values{}
	params.Set("page", strconv.Itoa(lq.Page))
	params.Set("pageSize", strconv.Itoa(lq.PageSize))
	params.Set("range", q.Range)
	if q.CustomFrom != "" {
		params.Set("customFrom", q.CustomFrom)
	}
	if q.CustomTo != "" {
		params.Set("customTo", q.CustomTo)
	}
	return params
}

func (q InventoryQuery) validate() error {
	v := validate.New()
	v.Require("range", q.Range, "Range")
	if q.Range == "custom" {
		v.Require("customFrom", q.CustomFrom, "Start date")
		v.Require("customTo", q.CustomTo, "End date")
	}
	return v.Err()
}

func (s *Reports) Inventory(ctx context.Context, q InventoryQuery) (*model.Page[model.InventoryRow], error) {
	if err := q.validate(); err != nil {
		return nil, err
	}
	var page model.Page[model.InventoryRow]
	if err := s.api.Get(ctx, "/reports/inventory", q.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *Reports) ExportInventory(ctx context.Context, q InventoryQuery, format string) (*api.Binary, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}
	v := validate.New()
	v.Check(format == "pdf" || format == "excel", "format", "Format must be pdf or excel")
	if err := v.Err(); err != nil {
		return nil, err
	}
	params := q.values()
	params.Set("format", format)
	return s.api.Download(ctx, "/reports/inventory", params)
}
