package service

import (
	"context"
	"fmt"

	"invdesk/internal/api"
	"invdesk/internal/model"
	"invdesk/internal/validate"
)

type Items struct {
	api *api.Client
}

func NewItems(client *api.Client) *Items {
	return &Items{api: client}
}

type ItemInput struct {
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Unit     string  `json:"unit,omitempty"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

func (in ItemInput) validate() error {
	v := validate.New()
	v.Require("name", in.Name, "Item name")
	v.Positive("price", in.Price, "Price")
	v.NonNegative("quantity", float64(in.Quantity), "Quantity")
	return v.Err()
}

func (s *Items) List(ctx context.Context, q ListQuery) (*model.Page[model.Item], error) {
	var page model.Page[model.Item]
	if err := s.api.Get(ctx, "/items", q.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *Items) Get(ctx context.Context, id int) (*model.Item, error) {
	var item model.Item
	if err := s.api.Get(ctx, fmt.Sprintf("/items/%d", id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Items) Create(ctx context.Context, in ItemInput) (*model.Item, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var item model.Item
	if err := s.api.Post(ctx, "/items", in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Items) Update(ctx context.Context, id int, in ItemInput) (*model.Item, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var item model.Item
	if err := s.api.Put(ctx, fmt.Sprintf("/items/%d", id), in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Items) Delete(ctx context.Context, id int) error {
	return s.api.Delete(ctx, fmt.Sprintf("/items/%d", id))
}
