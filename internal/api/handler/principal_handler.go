package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/orgledger/personnel-api/internal/core/domain"
	"github.com/orgledger/personnel-api/internal/core/ports"
)

// PrincipalHandler serves registration and record management for one kind.
type PrincipalHandler struct {
	kind         domain.Kind
	registration ports.RegistrationService
	principals   ports.PrincipalService
	log          zerolog.Logger
}

func NewPrincipalHandler(
	kind domain.Kind,
	registration ports.RegistrationService,
	principals ports.PrincipalService,
	log zerolog.Logger,
) *PrincipalHandler {
	return &PrincipalHandler{
		kind:         kind,
		registration: registration,
		principals:   principals,
		log:          log,
	}
}

// Register handles the registration route of the kind.
//
// @Summary      Register a principal
// @Tags         principals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registrationRequest  true  "Registration details"
// @Success      201   {object}  envelope{data=domain.Principal}
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /employee/emp-registration [post]
// @Router       /seeker/seeker-registration [post]
// @Router       /user/user-signup [post]
func (h *PrincipalHandler) Register(c echo.Context) error {
	var req registrationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	in, err := req.toInput(h.kind)
	if err != nil {
		return err
	}

	p, err := h.registration.Register(c.Request().Context(), in)
	if err != nil {
		return err
	}

	h.audit(c, "register", p.ID)
	return c.JSON(http.StatusCreated, envelope{Data: p, Message: string(h.kind) + " registered"})
}

// List returns a page of principals, optionally filtered by natural key.
//
// @Summary      List principals
// @Tags         principals
// @Produce      json
// @Security     BearerAuth
// @Param        cnic         query     string  false  "CNIC"
// @Param        business_id  query     string  false  "Business id"
// @Param        email        query     string  false  "Email"
// @Param        mobile       query     string  false  "Mobile"
// @Param        page         query     int     false  "Page (1-based)"
// @Param        limit        query     int     false  "Page size (max 100)"
// @Success      200          {object}  envelope{data=listResponse}
// @Failure      400          {object}  errorResponse
// @Router       /employee/all-employees [get]
// @Router       /seeker/all-seekers [get]
// @Router       /user/all-users [get]
func (h *PrincipalHandler) List(c echo.Context) error {
	var q listQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	res, err := h.principals.List(c.Request().Context(), h.kind, ports.ListInput{
		CNIC:       q.CNIC,
		BusinessID: q.BusinessID,
		Email:      q.Email,
		Mobile:     q.Mobile,
		Page:       q.Page,
		Limit:      q.Limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, envelope{Data: listResponse{
		Items:      res.Items,
		Total:      res.Total,
		Page:       res.Page,
		Limit:      res.Limit,
		TotalPages: res.TotalPages,
	}})
}

// GetByCNIC looks a principal up by national id.
//
// @Summary      Get a principal by CNIC
// @Tags         principals
// @Produce      json
// @Security     BearerAuth
// @Param        cnic  query     string  true  "CNIC"
// @Success      200   {object}  envelope{data=domain.Principal}
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /employee/single-emp [get]
// @Router       /seeker/single-seeker [get]
// @Router       /user/single-user [get]
func (h *PrincipalHandler) GetByCNIC(c echo.Context) error {
	p, err := h.principals.GetByCNIC(c.Request().Context(), h.kind, c.QueryParam("cnic"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope{Data: p})
}

// Update applies a partial profile update.
//
// @Summary      Update a principal
// @Tags         principals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Principal id"
// @Param        body  body      updateRequest  true  "Fields to change"
// @Success      200   {object}  envelope{data=domain.Principal}
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /employee/{id} [put]
// @Router       /seeker/{id} [put]
// @Router       /user/{id} [put]
func (h *PrincipalHandler) Update(c echo.Context) error {
	var req updateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	in, err := req.toInput()
	if err != nil {
		return err
	}

	id := c.Param("id")
	p, err := h.principals.Update(c.Request().Context(), h.kind, id, in)
	if err != nil {
		return err
	}

	h.audit(c, "update", id)
	return c.JSON(http.StatusOK, envelope{Data: p, Message: string(h.kind) + " updated"})
}

// ResetPassword sets a new password for the principal with the given CNIC.
//
// @Summary      Reset a password
// @Tags         principals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      passwordResetRequest  true  "CNIC and new password"
// @Success      200   {object}  envelope{data=domain.Principal}
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /employee/single-emp [put]
func (h *PrincipalHandler) ResetPassword(c echo.Context) error {
	var req passwordResetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p, err := h.principals.ChangePassword(c.Request().Context(), h.kind, req.CNIC, req.Password)
	if err != nil {
		return err
	}

	h.audit(c, "reset_password", p.ID)
	return c.JSON(http.StatusOK, envelope{Data: p, Message: "password updated"})
}

// Delete removes a principal. Deleting an absent id returns 404.
//
// @Summary      Delete a principal
// @Tags         principals
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Principal id"
// @Success      200  {object}  envelope{data=domain.Principal}
// @Failure      404  {object}  errorResponse
// @Router       /employee/{id} [delete]
// @Router       /seeker/{id} [delete]
// @Router       /user/{id} [delete]
func (h *PrincipalHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	p, err := h.principals.Delete(c.Request().Context(), h.kind, id)
	if err != nil {
		return err
	}

	h.audit(c, "delete", id)
	return c.JSON(http.StatusOK, envelope{Data: p, Message: string(h.kind) + " deleted"})
}

// audit records which principal performed a write. Public routes have no
// claims and are logged without an actor.
func (h *PrincipalHandler) audit(c echo.Context, action, target string) {
	ev := h.log.Info().
		Str("kind", string(h.kind)).
		Str("action", action).
		Str("target", target)
	if claims, err := ctxClaims(c); err == nil {
		ev = ev.Str("actor", claims.PrincipalID).Str("actor_role", string(claims.Role))
	}
	ev.Msg("principal write")
}
