package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"storefront/app/internal/domain"
	"storefront/app/internal/view"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

type searchRequest struct {
	Query string `json:"query"`
}

type quantityRequest struct {
	Delta int `json:"delta"`
}

// itemKey reads the {tab}/{id} pair shared by item and cart routes
func itemKey(r *http.Request) (domain.Tab, int, bool) {
	tab := domain.Tab(chi.URLParam(r, "tab"))
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return tab, 0, false
	}
	return tab, id, true
}

func (h *Handler) getPage(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, h.service.Page())
}

func (h *Handler) renderHTML(w http.ResponseWriter, r *http.Request) {
	page := h.service.Page()
	params := r.URL.Query()
	if params.Has("q") && params.Get("q") != page.Query {
		page = h.service.Search(params.Get("q"))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.RenderHTML(w, page); err != nil {
		log.Errorf("❌ %v", err)
	}
}

func (h *Handler) selectTab(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.SelectTab(domain.Tab(chi.URLParam(r, "tab")))
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, page)
}

func (h *Handler) selectSubcategory(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, h.service.SelectSubcategory(chi.URLParam(r, "name")))
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	writeSuccess(w, http.StatusOK, h.service.Search(req.Query))
}

func (h *Handler) clearSearch(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, h.service.ClearSearch())
}

func (h *Handler) openItem(w http.ResponseWriter, r *http.Request) {
	tab, id, ok := itemKey(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "item id must be an integer")
		return
	}
	page, err := h.service.OpenItem(tab, id)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, page)
}

func (h *Handler) closeItem(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, h.service.CloseItem())
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	tab, id, ok := itemKey(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "item id must be an integer")
		return
	}
	page, err := h.service.DeleteItem(r.Context(), tab, id)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, page)
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	tab, id, ok := itemKey(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "item id must be an integer")
		return
	}
	page, err := h.service.AddToCart(r.Context(), tab, id)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, page)
}

func (h *Handler) changeQuantity(w http.ResponseWriter, r *http.Request) {
	tab, id, ok := itemKey(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "item id must be an integer")
		return
	}
	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	writeSuccess(w, http.StatusOK, h.service.ChangeQuantity(r.Context(), tab, id, req.Delta))
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	tab, id, ok := itemKey(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "item id must be an integer")
		return
	}
	writeSuccess(w, http.StatusOK, h.service.RemoveFromCart(r.Context(), tab, id))
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.Checkout(r.Context())
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, page)
}
