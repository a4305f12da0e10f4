package handlers

import (
	"net/http"

	"github.com/ghuser/webapp/pkg/auth"
	"github.com/ghuser/webapp/pkg/errhttp"
	"github.com/ghuser/webapp/pkg/httpx"
	appsvcs "github.com/ghuser/webapp/services/product/application/services"
)

// ListProductsHandler handles GET /v1/product requests.
type ListProductsHandler struct {
	svc *appsvcs.Services
}

// NewListProductsHandler returns a ListProductsHandler backed by the given services.
func NewListProductsHandler(svc *appsvcs.Services) *ListProductsHandler {
	return &ListProductsHandler{svc: svc}
}

// Execute lists every product. No credential is required.
//
//	@Summary	List products
//	@Tags		products
//	@Produce	json
//	@Success	200	{array}	ProductResponse
//	@Router		/v1/product [get]
func (h *ListProductsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.Product.ListAll(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProductResponses(products))
}

// ListMyProductsHandler handles GET /v1/product/my-products requests.
type ListMyProductsHandler struct {
	svc *appsvcs.Services
}

// NewListMyProductsHandler returns a ListMyProductsHandler backed by the given services.
func NewListMyProductsHandler(svc *appsvcs.Services) *ListMyProductsHandler {
	return &ListMyProductsHandler{svc: svc}
}

// Execute lists the caller's own products.
//
//	@Summary	List own products
//	@Tags		products
//	@Produce	json
//	@Security	BasicAuth
//	@Success	200	{array}		ProductResponse
//	@Failure	401	{object}	errhttp.Body
//	@Router		/v1/product/my-products [get]
func (h *ListMyProductsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	products, err := h.svc.Product.ListMine(r.Context(), identity)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProductResponses(products))
}
