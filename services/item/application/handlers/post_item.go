package handlers

import (
	"net/http"

	"github.com/ghuser/menagerist/pkg/errhttp"
	"github.com/ghuser/menagerist/pkg/httpx"
	pkgvalidator "github.com/ghuser/menagerist/pkg/validator"
	appsvcs "github.com/ghuser/menagerist/services/item/application/services"
	"github.com/ghuser/menagerist/services/item/application/usecases"
)

// CreateItemRequest is the request body for POST /items.
type CreateItemRequest struct {
	Name        string  `json:"name"        validate:"required,notblank" example:"Vintage Laserdisc"`
	Description *string `json:"description" example:"TOS - The Menagerie"`
} // @name CreateItemRequest

// PostItemHandler handles POST /items requests.
type PostItemHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Writer
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services, errs *errhttp.Writer) *PostItemHandler {
	return &PostItemHandler{svc: svc, errs: errs}
}

// Execute creates a new item.
//
//	@Summary		Create item
//	@Description	Creates a new item with a fresh time-ordered identifier
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateItemRequest	true	"Item creation request"
//	@Success		201		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/items [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.CreateItem.Execute(r.Context(), usecases.CreateItemCommand{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toItemResponse(item))
}
