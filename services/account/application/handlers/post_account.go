package handlers

import (
	"net/http"

	"github.com/ghuser/webapp/pkg/errhttp"
	"github.com/ghuser/webapp/pkg/httpx"
	pkgvalidator "github.com/ghuser/webapp/pkg/validator"
	appsvcs "github.com/ghuser/webapp/services/account/application/services"
)

// PostAccountHandler handles POST /v1/user requests.
type PostAccountHandler struct {
	svc *appsvcs.Services
}

// NewPostAccountHandler returns a PostAccountHandler backed by the given services.
func NewPostAccountHandler(svc *appsvcs.Services) *PostAccountHandler {
	return &PostAccountHandler{svc: svc}
}

// Execute registers a new account.
//
//	@Summary		Create account
//	@Description	Registers a new account. The email becomes the login identifier.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateAccountRequest	true	"Account registration"
//	@Success		201		{object}	AccountResponse
//	@Failure		400		{object}	errhttp.Body
//	@Failure		409		{object}	errhttp.Body
//	@Router			/v1/user [post]
func (h *PostAccountHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateAccountRequest](w, r)
	if !ok {
		return
	}

	account, err := h.svc.Account.Create(r.Context(), appsvcs.CreateAccountInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toAccountResponse(account))
}
