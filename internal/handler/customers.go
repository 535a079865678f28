package handler

import (
	"net/http"

	"invdesk/internal/service"
)

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	page, pageSize, search := listQueryFromRequest(r)
	result, err := h.customers.List(r.Context(), service.ListQuery{Search: search, Page: page, PageSize: pageSize})
	if err != nil {
		writeError(w, err, "failed to load customers")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	customer, err := h.customers.Get(r.Context(), id)
	if err != nil {
		writeError(w, err, "failed to load customer")
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var in service.CustomerInput
	if !decodeBody(w, r, &in) {
		return
	}
	customer, err := h.customers.Create(r.Context(), in)
	if err != nil {
		writeSaveError(w, err, "failed to save customer")
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in service.CustomerInput
	if !decodeBody(w, r, &in) {
		return
	}
	customer, err := h.customers.Update(r.Context(), id, in)
	if err != nil {
		writeSaveError(w, err, "failed to save customer")
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.customers.Delete(r.Context(), id); err != nil {
		writeError(w, err, "failed to delete customer")
		return
	}
	writeMessage(w, http.StatusOK, "customer deleted")
}
