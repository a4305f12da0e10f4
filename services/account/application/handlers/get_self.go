package handlers

import (
	"net/http"

	"github.com/ghuser/webapp/pkg/auth"
	"github.com/ghuser/webapp/pkg/errhttp"
	"github.com/ghuser/webapp/pkg/httpx"
	appsvcs "github.com/ghuser/webapp/services/account/application/services"
)

// GetSelfHandler handles GET /v1/user/self requests.
type GetSelfHandler struct {
	svc *appsvcs.Services
}

// NewGetSelfHandler returns a GetSelfHandler backed by the given services.
func NewGetSelfHandler(svc *appsvcs.Services) *GetSelfHandler {
	return &GetSelfHandler{svc: svc}
}

// Execute returns the caller's own account.
//
//	@Summary	Get own account
//	@Tags		users
//	@Produce	json
//	@Security	BasicAuth
//	@Success	200	{object}	AccountResponse
//	@Failure	401	{object}	errhttp.Body
//	@Router		/v1/user/self [get]
func (h *GetSelfHandler) Execute(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	account, err := h.svc.Account.GetSelf(r.Context(), identity)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toAccountResponse(account))
}
