package handlers

import (
	"net/http"

	"github.com/ghuser/menagerist/pkg/errhttp"
	"github.com/ghuser/menagerist/pkg/httpx"
	appsvcs "github.com/ghuser/menagerist/services/item/application/services"
	"github.com/ghuser/menagerist/services/item/application/usecases"
)

// ListItemsHandler handles GET /items requests.
type ListItemsHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Writer
}

func NewListItemsHandler(svc *appsvcs.Services, errs *errhttp.Writer) *ListItemsHandler {
	return &ListItemsHandler{svc: svc, errs: errs}
}

// Execute returns every item. The response is always an array, never null.
//
//	@Summary		List items
//	@Tags			items
//	@Produce		json
//	@Success		200	{array}	ItemResponse
//	@Router			/items [get]
func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListItems.Execute(r.Context(), usecases.ListItemsQuery{})
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	resp := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toItemResponse(item))
	}
	httpx.JSON(w, http.StatusOK, resp)
}
