package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/saintdavies/property-console/internal/core/domain"
	"github.com/saintdavies/property-console/internal/core/ports"
)

type UserHandler struct {
	accounts ports.AccountService
}

func NewUserHandler(accounts ports.AccountService) *UserHandler {
	return &UserHandler{accounts: accounts}
}

// Register creates a directory account. Callers who can only invite users
// may create tenant accounts and nothing else.
//
// @Summary      Register a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  domain.Account
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/users [post]
func (h *UserHandler) Register(c echo.Context) error {
	session, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return err
	}
	if !session.HasPermission(domain.PermManageUsers) && role != domain.RoleTenant {
		return domain.ErrForbidden
	}

	account, err := h.accounts.Register(c.Request().Context(), ports.RegisterAccountInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		PropertyIDs: req.PropertyIDs,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, account)
}
