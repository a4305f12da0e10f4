package handlers

import (
	"net/http"

	"github.com/ghuser/webapp/pkg/auth"
	"github.com/ghuser/webapp/pkg/errhttp"
	"github.com/ghuser/webapp/pkg/httpx"
	pkgvalidator "github.com/ghuser/webapp/pkg/validator"
	appsvcs "github.com/ghuser/webapp/services/account/application/services"
)

// UpdateSelfHandler handles PUT and PATCH /v1/user/self requests.
type UpdateSelfHandler struct {
	svc *appsvcs.Services
}

// NewUpdateSelfHandler returns an UpdateSelfHandler backed by the given services.
func NewUpdateSelfHandler(svc *appsvcs.Services) *UpdateSelfHandler {
	return &UpdateSelfHandler{svc: svc}
}

// Execute replaces the caller's names and rotates their password.
// PATCH is served by the same full-replace logic.
//
//	@Summary	Update own account
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Security	BasicAuth
//	@Param		request	body		UpdateAccountRequest	true	"Profile update"
//	@Success	200		{object}	AccountResponse
//	@Failure	400		{object}	errhttp.Body
//	@Failure	401		{object}	errhttp.Body
//	@Router		/v1/user/self [put]
//	@Router		/v1/user/self [patch]
func (h *UpdateSelfHandler) Execute(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateAccountRequest](w, r)
	if !ok {
		return
	}

	account, err := h.svc.Account.UpdateSelf(r.Context(), identity, appsvcs.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toAccountResponse(account))
}
