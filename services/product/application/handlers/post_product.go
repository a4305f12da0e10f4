package handlers

import (
	"net/http"

	"github.com/ghuser/webapp/pkg/auth"
	"github.com/ghuser/webapp/pkg/errhttp"
	"github.com/ghuser/webapp/pkg/httpx"
	pkgvalidator "github.com/ghuser/webapp/pkg/validator"
	appsvcs "github.com/ghuser/webapp/services/product/application/services"
)

// PostProductHandler handles POST /v1/product requests.
type PostProductHandler struct {
	svc *appsvcs.Services
}

// NewPostProductHandler returns a PostProductHandler backed by the given services.
func NewPostProductHandler(svc *appsvcs.Services) *PostProductHandler {
	return &PostProductHandler{svc: svc}
}

// Execute creates a product owned by the caller.
//
//	@Summary		Create product
//	@Description	Creates a product. The authenticated caller becomes its owner.
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Security		BasicAuth
//	@Param			request	body		ProductRequest	true	"Product fields"
//	@Success		201		{object}	ProductResponse
//	@Failure		400		{object}	errhttp.Body
//	@Failure		401		{object}	errhttp.Body
//	@Failure		409		{object}	errhttp.Body
//	@Router			/v1/product [post]
func (h *PostProductHandler) Execute(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[ProductRequest](w, r)
	if !ok {
		return
	}

	product, err := h.svc.Product.Create(r.Context(), identity, req.fields())
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toProductResponse(product))
}
