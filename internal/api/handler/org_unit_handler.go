package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orgledger/personnel-api/internal/core/domain"
	"github.com/orgledger/personnel-api/internal/core/ports"
)

// OrgUnitHandler serves the CRUD routes of one organization kind.
type OrgUnitHandler struct {
	kind  domain.OrgKind
	units ports.OrgUnitService
}

func NewOrgUnitHandler(kind domain.OrgKind, units ports.OrgUnitService) *OrgUnitHandler {
	return &OrgUnitHandler{kind: kind, units: units}
}

// List returns every entity of the kind.
//
// @Summary      List organization units
// @Tags         organization
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=[]domain.OrgUnit}
// @Router       /city/all-cities [get]
// @Router       /branch/all-branches [get]
// @Router       /department/all-departments [get]
func (h *OrgUnitHandler) List(c echo.Context) error {
	units, err := h.units.List(c.Request().Context(), h.kind)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope{Data: units})
}

// Get returns one entity by id.
//
// @Summary      Get an organization unit
// @Tags         organization
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Unit id"
// @Success      200  {object}  envelope{data=domain.OrgUnit}
// @Failure      404  {object}  errorResponse
// @Router       /city/single-city/{id} [get]
// @Router       /branch/single-branch/{id} [get]
// @Router       /department/single-department/{id} [get]
func (h *OrgUnitHandler) Get(c echo.Context) error {
	u, err := h.units.Get(c.Request().Context(), h.kind, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope{Data: u})
}

// Create adds an entity.
//
// @Summary      Add an organization unit
// @Tags         organization
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      orgUnitRequest  true  "Unit details"
// @Success      201   {object}  envelope{data=domain.OrgUnit}
// @Failure      400   {object}  errorResponse
// @Router       /city/add-city [post]
// @Router       /branch/add-branch [post]
// @Router       /department/add-department [post]
func (h *OrgUnitHandler) Create(c echo.Context) error {
	var req orgUnitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	u, err := h.units.Create(c.Request().Context(), h.kind, req.toInput(h.kind), actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, envelope{Data: u, Message: string(h.kind) + " added"})
}

// Update changes an entity and appends to its history.
//
// @Summary      Update an organization unit
// @Tags         organization
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Unit id"
// @Param        body  body      orgUnitRequest  true  "Fields to change"
// @Success      200   {object}  envelope{data=domain.OrgUnit}
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /city/update-city/{id} [put]
// @Router       /branch/update-branch/{id} [put]
// @Router       /department/update-department/{id} [put]
func (h *OrgUnitHandler) Update(c echo.Context) error {
	var req orgUnitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	u, err := h.units.Update(c.Request().Context(), h.kind, c.Param("id"), req.toInput(h.kind), actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope{Data: u, Message: string(h.kind) + " updated"})
}

// Delete removes an entity. Deleting an absent id returns 404.
//
// @Summary      Delete an organization unit
// @Tags         organization
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Unit id"
// @Success      200  {object}  envelope{data=domain.OrgUnit}
// @Failure      404  {object}  errorResponse
// @Router       /city/delete-city/{id} [delete]
// @Router       /branch/delete-branch/{id} [delete]
// @Router       /department/delete-department/{id} [delete]
func (h *OrgUnitHandler) Delete(c echo.Context) error {
	u, err := h.units.Delete(c.Request().Context(), h.kind, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope{Data: u, Message: string(h.kind) + " deleted"})
}

// Count reports how many entities of the kind exist, keyed as
// "<kind>Count".
//
// @Summary      Count organization units
// @Tags         organization
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=map[string]int64}
// @Router       /branch/branch-count [get]
// @Router       /department/department-count [get]
func (h *OrgUnitHandler) Count(c echo.Context) error {
	n, err := h.units.Count(c.Request().Context(), h.kind)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope{Data: map[string]int64{string(h.kind) + "Count": n}})
}

// actor names the gated principal for the entity's history.
func actor(c echo.Context) string {
	claims, err := ctxClaims(c)
	if err != nil {
		return ""
	}
	if claims.BusinessID != "" {
		return claims.BusinessID
	}
	return claims.PrincipalID
}
