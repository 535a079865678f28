package handler

import (
	"net/http"

	"invdesk/internal/service"
)

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	page, pageSize, search := listQueryFromRequest(r)
	result, err := h.items.List(r.Context(), service.ListQuery{Search: search, Page: page, PageSize: pageSize})
	if err != nil {
		writeError(w, err, "failed to load items")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	item, err := h.items.Get(r.Context(), id)
	if err != nil {
		writeError(w, err, "failed to load item")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var in service.ItemInput
	if !decodeBody(w, r, &in) {
		return
	}
	item, err := h.items.Create(r.Context(), in)
	if err != nil {
		writeSaveError(w, err, "failed to save item")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in service.ItemInput
	if !decodeBody(w, r, &in) {
		return
	}
	item, err := h.items.Update(r.Context(), id, in)
	if err != nil {
		writeSaveError(w, err, "failed to save item")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.items.Delete(r.Context(), id); err != nil {
		writeError(w, err, "failed to delete item")
		return
	}
	writeMessage(w, http.StatusOK, "item deleted")
}
