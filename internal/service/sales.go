package service

import (
	"context"
	"fmt"

	"invdesk/internal/api"
	"invdesk/internal/model"
	"invdesk/internal/validate"
)

type Sales struct {
	api *api.Client
}

func NewSales(client *api.Client) *Sales {
	return &Sales{api: client}
}

// SaleLine pairs the selected item snapshot with the quantity being sold,
// so stock can be checked locally before anything is sent.
type SaleLine struct {
	Item     model.Item
	Quantity int
}

type SaleInput struct {
	// CustomerID is nil for a cash sale.
	CustomerID *int
	Lines      []SaleLine
	Paid       float64
}

func (in SaleInput) validate() error {
	v := validate.New()
	v.Check(len(in.Lines) > 0, "items", "Add at least one item")
	for i, line := range in.Lines {
		field := fmt.Sprintf("items[%d]", i)
		v.Check(line.Quantity > 0, field, "Quantity must be greater than 0")
		v.Check(line.Quantity <= line.Item.Quantity, field, "Insufficient stock")
	}
	v.NonNegative("paid", in.Paid, "Paid amount")
	return v.Err()
}

type saleItemPayload struct {
	ItemID   int     `json:"itemId"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type salePayload struct {
	CustomerID *int              `json:"customerId,omitempty"`
	Items      []saleItemPayload `json:"items"`
	Paid       float64           `json:"paid"`
}

func (s *Sales) List(ctx context.Context, q ListQuery) (*model.Page[model.Sale], error) {
	var page model.Page[model.Sale]
	if err := s.api.Get(ctx, "/sales", q.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Create records a sale. Stock is validated locally against the item
// snapshots in the input; a failing line never reaches the network.
func (s *Sales) Create(ctx context.Context, in SaleInput) (*model.Sale, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	payload := salePayload{CustomerID: in.CustomerID, Paid: in.Paid}
	for _, line := range in.Lines {
		payload.Items = append(payload.Items, saleItemPayload{
			ItemID:   line.Item.ID,
			Quantity: line.Quantity,
			Price:    line.Item.Price,
		})
	}

	var sale model.Sale
	if err := s.api.Post(ctx, "/sales", payload, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}

// Ledger returns every sale recorded against one customer.
func (s *Sales) Ledger(ctx context.Context, customerID int) ([]model.Sale, error) {
	var sales []model.Sale
	if err := s.api.Get(ctx, fmt.Sprintf("/sales/customer/%d", customerID), nil, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}
