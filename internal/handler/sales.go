package handler

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"invdesk/internal/model"
	"invdesk/internal/service"
)

func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	page, pageSize, search := listQueryFromRequest(r)
	q := r.URL.Query()
	result, err := h.sales.List(r.Context(), service.ListQuery{
		Search:   search,
		Page:     page,
		PageSize: pageSize,
		DateFrom: q.Get("dateFrom"),
		DateTo:   q.Get("dateTo"),
	})
	if err != nil {
		writeError(w, err, "failed to load sales")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type saleLineRequest struct {
	ItemID   int `json:"itemId"`
	Quantity int `json:"quantity"`
}

type createSaleRequest struct {
	CustomerID *int              `json:"customerId,omitempty"`
	Items      []saleLineRequest `json:"items"`
	Paid       float64           `json:"paid"`
}

// createSaleResponse bundles the created sale with refreshed first pages
// of sales and items, because recording a sale changes stock quantities.
type createSaleResponse struct {
	Sale  *model.Sale              `json:"sale"`
	Sales *model.Page[model.Sale] `json:"sales"`
	Items *model.Page[model.Item] `json:"items"`
}

func (h *Handler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var req createSaleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	in := service.SaleInput{CustomerID: req.CustomerID, Paid: req.Paid}
	for _, line := range req.Items {
		item, err := h.items.Get(r.Context(), line.ItemID)
		if err != nil {
			writeError(w, err, "failed to load item for sale")
			return
		}
		in.Lines = append(in.Lines, service.SaleLine{Item: *item, Quantity: line.Quantity})
	}

	sale, err := h.sales.Create(r.Context(), in)
	if err != nil {
		writeError(w, err, "failed to record sale")
		return
	}

	// Reload sales and items together; the sale just changed both.
	resp := createSaleResponse{Sale: sale}
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		resp.Sales, err = h.sales.List(ctx, service.ListQuery{Page: 1})
		return err
	})
	g.Go(func() error {
		var err error
		resp.Items, err = h.items.List(ctx, service.ListQuery{Page: 1})
		return err
	})
	if err := g.Wait(); err != nil {
		// The sale is already recorded; return it without the reloads.
		h.log.Warn().Err(err).Msg("post-sale reload failed")
		resp.Sales, resp.Items = nil, nil
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) CustomerLedger(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	ledger, err := h.sales.Ledger(r.Context(), id)
	if err != nil {
		writeError(w, err, "failed to load customer ledger")
		return
	}
	writeJSON(w, http.StatusOK, ledger)
}
