package handlers

import (
	"net/http"

	"github.com/ghuser/menagerist/pkg/errhttp"
	"github.com/ghuser/menagerist/pkg/httpx"
	appsvcs "github.com/ghuser/menagerist/services/item/application/services"
	"github.com/ghuser/menagerist/services/item/application/usecases"
	itemdomain "github.com/ghuser/menagerist/services/item/domain"
)

// GetItemHandler handles GET /items/{itemID} requests.
type GetItemHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Writer
}

func NewGetItemHandler(svc *appsvcs.Services, errs *errhttp.Writer) *GetItemHandler {
	return &GetItemHandler{svc: svc, errs: errs}
}

// Execute returns a single item.
//
//	@Summary		Get item
//	@Tags			items
//	@Produce		json
//	@Param			itemID	path		string	true	"Item ID (UUIDv7)"
//	@Success		200		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/items/{itemID} [get]
func (h *GetItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := itemIDParam(r)
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	item, found, err := h.svc.GetItem.Execute(r.Context(), usecases.GetItemQuery{ID: id})
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}
	if !found {
		h.errs.WriteError(w, r, itemdomain.ErrItemNotFound)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
