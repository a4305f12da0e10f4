package handlers

import (
	"net/http"

	"github.com/ghuser/webapp/pkg/auth"
	"github.com/ghuser/webapp/pkg/errhttp"
	"github.com/ghuser/webapp/pkg/httpx"
	pkgvalidator "github.com/ghuser/webapp/pkg/validator"
	appsvcs "github.com/ghuser/webapp/services/product/application/services"
)

// UpdateProductHandler handles PUT and PATCH /v1/product/{id} requests.
type UpdateProductHandler struct {
	svc *appsvcs.Services
}

// NewUpdateProductHandler returns an UpdateProductHandler backed by the given services.
func NewUpdateProductHandler(svc *appsvcs.Services) *UpdateProductHandler {
	return &UpdateProductHandler{svc: svc}
}

// Execute replaces every field of a product owned by the caller.
// PATCH is served by the same full-replace logic.
//
//	@Summary	Update product
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Security	BasicAuth
//	@Param		id		path		string			true	"Product ID"	format(uuid)
//	@Param		request	body		ProductRequest	true	"Product fields"
//	@Success	200		{object}	ProductResponse
//	@Failure	400		{object}	errhttp.Body
//	@Failure	401		{object}	errhttp.Body
//	@Failure	403		{object}	errhttp.Body
//	@Failure	404		{object}	errhttp.Body
//	@Failure	409		{object}	errhttp.Body
//	@Router		/v1/product/{id} [put]
//	@Router		/v1/product/{id} [patch]
func (h *UpdateProductHandler) Execute(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	id, err := productID(r)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[ProductRequest](w, r)
	if !ok {
		return
	}

	product, err := h.svc.Product.Update(r.Context(), identity, id, req.fields())
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toProductResponse(product))
}
