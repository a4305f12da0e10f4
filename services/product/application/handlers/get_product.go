package handlers

import (
	"net/http"

	"github.com/ghuser/webapp/pkg/errhttp"
	"github.com/ghuser/webapp/pkg/httpx"
	appsvcs "github.com/ghuser/webapp/services/product/application/services"
)

// GetProductHandler handles GET /v1/product/{id} requests.
type GetProductHandler struct {
	svc *appsvcs.Services
}

// NewGetProductHandler returns a GetProductHandler backed by the given services.
func NewGetProductHandler(svc *appsvcs.Services) *GetProductHandler {
	return &GetProductHandler{svc: svc}
}

// Execute returns a single product. No credential is required.
//
//	@Summary	Get product
//	@Tags		products
//	@Produce	json
//	@Param		id	path		string	true	"Product ID"	format(uuid)
//	@Success	200	{object}	ProductResponse
//	@Failure	400	{object}	errhttp.Body
//	@Failure	404	{object}	errhttp.Body
//	@Router		/v1/product/{id} [get]
func (h *GetProductHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	product, err := h.svc.Product.GetByID(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toProductResponse(product))
}
