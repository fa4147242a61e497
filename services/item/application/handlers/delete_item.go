package handlers

import (
	"net/http"

	"github.com/ghuser/menagerist/pkg/errhttp"
	"github.com/ghuser/menagerist/pkg/httpx"
	appsvcs "github.com/ghuser/menagerist/services/item/application/services"
	"github.com/ghuser/menagerist/services/item/application/usecases"
	itemdomain "github.com/ghuser/menagerist/services/item/domain"
)

// DeleteItemHandler handles DELETE /items/{itemID} requests.
type DeleteItemHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Writer
}

func NewDeleteItemHandler(svc *appsvcs.Services, errs *errhttp.Writer) *DeleteItemHandler {
	return &DeleteItemHandler{svc: svc, errs: errs}
}

// Execute deletes an item.
//
//	@Summary		Delete item
//	@Tags			items
//	@Param			itemID	path	string	true	"Item ID (UUIDv7)"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/items/{itemID} [delete]
func (h *DeleteItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := itemIDParam(r)
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	_, found, err := h.svc.DeleteItem.Execute(r.Context(), usecases.DeleteItemCommand{ID: id})
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}
	if !found {
		h.errs.WriteError(w, r, itemdomain.ErrItemNotFound)
		return
	}

	httpx.NoContent(w)
}
