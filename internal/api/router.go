package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/orgledger/personnel-api/internal/api/handler"
	"github.com/orgledger/personnel-api/internal/api/middleware"
	"github.com/orgledger/personnel-api/internal/core/domain"
	"github.com/orgledger/personnel-api/internal/core/ports"
	"github.com/orgledger/personnel-api/internal/core/validation"
)

// Deps are the services the router wires into handlers.
type Deps struct {
	Auth         ports.AuthService
	Registration ports.RegistrationService
	Principals   ports.PrincipalService
	OrgUnits     ports.OrgUnitService
	Validator    *validation.Validator
	Readiness    []handler.Pinger
	Log          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator(d.Validator)
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(middleware.Metrics())

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Readiness...)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1")

	gate := func(kind domain.Kind, roles ...domain.Role) echo.MiddlewareFunc {
		return middleware.RoleGate(d.Auth, kind, roles...)
	}
	admin := gate(domain.KindEmployee, domain.RoleAdmin)
	frontDesk := gate(domain.KindEmployee, domain.RoleAdmin, domain.RoleReceptionist)
	anyEmployee := gate(domain.KindEmployee, domain.RoleAdmin, domain.RoleReceptionist, domain.RoleStaff)
	userAdmin := gate(domain.KindUser, domain.RoleAdmin)

	// --- Employees ---
	employees := handler.NewPrincipalHandler(domain.KindEmployee, d.Registration, d.Principals, d.Log)
	employeeAuth := handler.NewAuthHandler(domain.KindEmployee, d.Auth)
	emp := v1.Group("/employee")
	emp.POST("/emp-registration", employees.Register, admin)
	emp.POST("/emp-login", employeeAuth.Login)
	emp.GET("/all-employees", employees.List, frontDesk)
	emp.GET("/single-emp", employees.GetByCNIC, frontDesk)
	emp.PUT("/single-emp", employees.ResetPassword, admin)
	emp.PUT("/:id", employees.Update, admin)
	emp.DELETE("/:id", employees.Delete, admin)

	// --- Seekers ---
	seekers := handler.NewPrincipalHandler(domain.KindSeeker, d.Registration, d.Principals, d.Log)
	sk := v1.Group("/seeker")
	sk.POST("/seeker-registration", seekers.Register, frontDesk)
	sk.GET("/all-seekers", seekers.List, anyEmployee)
	sk.GET("/single-seeker", seekers.GetByCNIC, anyEmployee)
	sk.PUT("/:id", seekers.Update, frontDesk)
	sk.DELETE("/:id", seekers.Delete, admin)

	// --- Users ---
	users := handler.NewPrincipalHandler(domain.KindUser, d.Registration, d.Principals, d.Log)
	userAuth := handler.NewAuthHandler(domain.KindUser, d.Auth)
	usr := v1.Group("/user")
	usr.POST("/user-signup", users.Register)
	usr.POST("/user-login", userAuth.Login)
	usr.GET("/all-users", users.List, userAdmin)
	usr.GET("/single-user", users.GetByCNIC, userAdmin)
	usr.PUT("/:id", users.Update, userAdmin)
	usr.DELETE("/:id", users.Delete, userAdmin)

	// --- Organization units ---
	cities := handler.NewOrgUnitHandler(domain.OrgCity, d.OrgUnits)
	city := v1.Group("/city")
	city.GET("/all-cities", cities.List, anyEmployee)
	city.GET("/cities", cities.List, anyEmployee)
	city.GET("/single-city/:id", cities.Get, anyEmployee)
	city.POST("/add-city", cities.Create, admin)
	city.PUT("/update-city/:id", cities.Update, admin)
	city.DELETE("/delete-city/:id", cities.Delete, admin)

	branches := handler.NewOrgUnitHandler(domain.OrgBranch, d.OrgUnits)
	br := v1.Group("/branch")
	br.GET("/all-branches", branches.List, anyEmployee)
	br.GET("/single-branch/:id", branches.Get, anyEmployee)
	br.GET("/branch-count", branches.Count, anyEmployee)
	br.POST("/add-branch", branches.Create, admin)
	br.PUT("/update-branch/:id", branches.Update, admin)
	br.DELETE("/delete-branch/:id", branches.Delete, admin)

	departments := handler.NewOrgUnitHandler(domain.OrgDepartment, d.OrgUnits)
	dep := v1.Group("/department")
	dep.GET("/all-departments", departments.List, anyEmployee)
	dep.GET("/single-department/:id", departments.Get, anyEmployee)
	dep.GET("/department-count", departments.Count, anyEmployee)
	dep.POST("/add-department", departments.Create, admin)
	dep.PUT("/update-department/:id", departments.Update, admin)
	dep.DELETE("/delete-department/:id", departments.Delete, admin)

	e.RouteNotFound("/*", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "route not found")
	})

	return e
}
