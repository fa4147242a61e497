package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/menagerist/services/item/domain/models"
)

// ItemResponse is the JSON representation of an item.
type ItemResponse struct {
	ID          string  `json:"id"          example:"01890a5d-ac96-774b-bcce-b302099a8057"`
	Name        string  `json:"name"        example:"Vintage Laserdisc"`
	Description *string `json:"description" example:"TOS - The Menagerie"`
} // @name ItemResponse

// ErrorResponse documents httpx.ErrorBody, the body of every error response.
type ErrorResponse struct {
	Error  string            `json:"error"            example:"item not found"`
	Fields map[string]string `json:"fields,omitempty" example:"Name:Must not be blank"`
} // @name ErrorResponse

func toItemResponse(item models.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID().String(),
		Name:        item.Name().String(),
		Description: item.DescriptionPtr(),
	}
}

// itemIDParam parses the {itemID} URL parameter.
func itemIDParam(r *http.Request) (models.ItemID, error) {
	return models.ParseItemID(chi.URLParam(r, "itemID"))
}
