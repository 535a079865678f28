package service

import (
	"context"
	"fmt"

	"invdesk/internal/api"
	"invdesk/internal/model"
	"invdesk/internal/validate"
)

type Customers struct {
	api *api.Client
}

func NewCustomers(client *api.Client) *Customers {
	return &Customers{api: client}
}

type CustomerInput struct {
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

func (in CustomerInput) validate() error {
	v := validate.New()
	v.Require("name", in.Name, "Customer name")
	v.Require("mobile", in.Mobile, "Mobile number")
	v.Mobile("mobile", in.Mobile)
	v.Email("email", in.Email)
	return v.Err()
}

func (s *Customers) List(ctx context.Context, q ListQuery) (*model.Page[model.Customer], error) {
	var page model.Page[model.Customer]
	if err := s.api.Get(ctx, "/customers", q.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *Customers) Get(ctx context.Context, id int) (*model.Customer, error) {
	var customer model.Customer
	if err := s.api.Get(ctx, fmt.Sprintf("/customers/%d", id), nil, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *Customers) Create(ctx context.Context, in CustomerInput) (*model.Customer, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var customer model.Customer
	if err := s.api.Post(ctx, "/customers", in, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *Customers) Update(ctx context.Context, id int, in CustomerInput) (*model.Customer, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var customer model.Customer
	if err := s.api.Put(ctx, fmt.Sprintf("/customers/%d", id), in, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *Customers) Delete(ctx context.Context, id int) error {
	return s.api.Delete(ctx, fmt.Sprintf("/customers/%d", id))
}
