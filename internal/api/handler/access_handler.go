package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/saintdavies/property-console/internal/core/domain"
)

// AccessHandler exposes permission decisions to the dashboard.
type AccessHandler struct{}

func NewAccessHandler() *AccessHandler {
	return &AccessHandler{}
}

// Navigation lists the sidebar entries the caller may open.
//
// @Summary      Visible navigation
// @Tags         access
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  navigationResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/navigation [get]
func (h *AccessHandler) Navigation(c echo.Context) error {
	session, _, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, navigationResponse{Items: domain.VisibleNavigation(session)})
}

// Check evaluates a permission list against the caller's session.
//
// @Summary      Check permissions
// @Tags         access
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      checkRequest  true  "Permissions and policy (all or any)"
// @Success      200   {object}  checkResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/access/check [post]
func (h *AccessHandler) Check(c echo.Context) error {
	session, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req checkRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	policy, err := domain.ParsePolicy(req.Policy)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	perms := make([]domain.Permission, 0, len(req.Permissions))
	for _, raw := range req.Permissions {
		p, err := domain.ParsePermission(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		perms = append(perms, p)
	}

	allowed := domain.Requirement{Permissions: perms, Policy: policy}.Allows(session)
	return c.JSON(http.StatusOK, checkResponse{Allowed: allowed})
}

// View confirms access to one dashboard view. The route guard has already
// rejected callers without the view's permissions.
//
// @Summary      Open a dashboard view
// @Tags         access
// @Produce      json
// @Security     BearerAuth
// @Param        view  path      string  true  "View key (e.g. payments)"
// @Success      200   {object}  viewResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/views/{view} [get]
func (h *AccessHandler) View(c echo.Context) error {
	item, ok := domain.FindView(c.Param("view"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "view not found")
	}
	return c.JSON(http.StatusOK, viewResponse{View: item, Allowed: true})
}

// Roles returns the role-permission matrix.
//
// @Summary      Role-permission matrix
// @Tags         access
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  rolesResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/roles [get]
func (h *AccessHandler) Roles(c echo.Context) error {
	return c.JSON(http.StatusOK, rolesResponse{Roles: domain.RoleMatrix()})
}
