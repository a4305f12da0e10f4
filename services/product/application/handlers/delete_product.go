package handlers

import (
	"net/http"

	"github.com/ghuser/webapp/pkg/auth"
	"github.com/ghuser/webapp/pkg/errhttp"
	"github.com/ghuser/webapp/pkg/httpx"
	appsvcs "github.com/ghuser/webapp/services/product/application/services"
)

// DeleteProductHandler handles DELETE /v1/product/{id} requests.
type DeleteProductHandler struct {
	svc *appsvcs.Services
}

// NewDeleteProductHandler returns a DeleteProductHandler backed by the given services.
func NewDeleteProductHandler(svc *appsvcs.Services) *DeleteProductHandler {
	return &DeleteProductHandler{svc: svc}
}

// Execute deletes a product owned by the caller.
//
//	@Summary	Delete product
//	@Tags		products
//	@Security	BasicAuth
//	@Param		id	path	string	true	"Product ID"	format(uuid)
//	@Success	204
//	@Failure	400	{object}	errhttp.Body
//	@Failure	401	{object}	errhttp.Body
//	@Failure	403	{object}	errhttp.Body
//	@Failure	404	{object}	errhttp.Body
//	@Router		/v1/product/{id} [delete]
func (h *DeleteProductHandler) Execute(w http.ResponseWriter, r *http.Request) {
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

	if err := h.svc.Product.Delete(r.Context(), identity, id); err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	httpx.NoContent(w)
}
