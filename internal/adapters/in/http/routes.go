package http

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface is implemented by Server. Path and query parameters are
// bound and type-checked by ServerInterfaceWrapper before a method runs.
type ServerInterface interface {
	// (GET /health)
	GetHealth(ctx echo.Context) error
	// (POST /users)
	RegisterUser(ctx echo.Context) error
	// (GET /users/{user}/role)
	GetUserRole(ctx echo.Context, email string) error
	// (PATCH /users/{user}/role)
	SetUserRole(ctx echo.Context, id uuid.UUID) error
	// (GET /parcels)
	ListParcels(ctx echo.Context, params ListParcelsParams) error
	// (POST /parcels)
	CreateParcel(ctx echo.Context) error
	// (GET /parcels/pending/{email})
	ListPendingParcels(ctx echo.Context, email string) error
	// (DELETE /parcels/{id})
	DeleteParcel(ctx echo.Context, id uuid.UUID) error
	// (PATCH /parcels/{id}/deliver)
	DeliverParcel(ctx echo.Context, id uuid.UUID) error
	// (GET /riders)
	ListRiders(ctx echo.Context, params ListRidersParams) error
	// (POST /riders)
	ApplyAsRider(ctx echo.Context) error
	// (GET /riders/pending)
	ListPendingRiders(ctx echo.Context) error
	// (GET /riders/approved)
	ListApprovedRiders(ctx echo.Context) error
	// (PATCH /riders/update-status/{id})
	ReviewApplication(ctx echo.Context, id uuid.UUID) error
	// (PATCH /assign-rider/{parcelId})
	AssignRider(ctx echo.Context, parcelID uuid.UUID) error
	// (GET /payments)
	ListPayments(ctx echo.Context, params ListPaymentsParams) error
	// (POST /payments)
	RecordPayment(ctx echo.Context) error
	// (POST /create-payment-intent)
	CreatePaymentIntent(ctx echo.Context) error
	// (POST /tracking)
	RecordTracking(ctx echo.Context) error
	// (GET /tracking/{trackingId})
	ListTracking(ctx echo.Context, trackingID string) error
}

type ListParcelsParams struct {
	Email *string
}

type ListRidersParams struct {
	Status *string
}

type ListPaymentsParams struct {
	Email *string
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindPath(ctx echo.Context, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

func bindQuery(ctx echo.Context, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, ctx.QueryParams(), dest); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

func (w *ServerInterfaceWrapper) GetHealth(ctx echo.Context) error {
	return w.Handler.GetHealth(ctx)
}

func (w *ServerInterfaceWrapper) RegisterUser(ctx echo.Context) error {
	return w.Handler.RegisterUser(ctx)
}

func (w *ServerInterfaceWrapper) GetUserRole(ctx echo.Context) error {
	var email string
	if err := bindPath(ctx, "user", &email); err != nil {
		return err
	}
	return w.Handler.GetUserRole(ctx, email)
}

func (w *ServerInterfaceWrapper) SetUserRole(ctx echo.Context) error {
	var id uuid.UUID
	if err := bindPath(ctx, "user", &id); err != nil {
		return err
	}
	return w.Handler.SetUserRole(ctx, id)
}

func (w *ServerInterfaceWrapper) ListParcels(ctx echo.Context) error {
	var params ListParcelsParams
	if err := bindQuery(ctx, "email", &params.Email); err != nil {
		return err
	}
	return w.Handler.ListParcels(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateParcel(ctx echo.Context) error {
	return w.Handler.CreateParcel(ctx)
}

func (w *ServerInterfaceWrapper) ListPendingParcels(ctx echo.Context) error {
	var email string
	if err := bindPath(ctx, "email", &email); err != nil {
		return err
	}
	return w.Handler.ListPendingParcels(ctx, email)
}

func (w *ServerInterfaceWrapper) DeleteParcel(ctx echo.Context) error {
	var id uuid.UUID
	if err := bindPath(ctx, "id", &id); err != nil {
		return err
	}
	return w.Handler.DeleteParcel(ctx, id)
}

func (w *ServerInterfaceWrapper) DeliverParcel(ctx echo.Context) error {
	var id uuid.UUID
	if err := bindPath(ctx, "id", &id); err != nil {
		return err
	}
	return w.Handler.DeliverParcel(ctx, id)
}

func (w *ServerInterfaceWrapper) ListRiders(ctx echo.Context) error {
	var params ListRidersParams
	if err := bindQuery(ctx, "status", &params.Status); err != nil {
		return err
	}
	return w.Handler.ListRiders(ctx, params)
}

func (w *ServerInterfaceWrapper) ApplyAsRider(ctx echo.Context) error {
	return w.Handler.ApplyAsRider(ctx)
}

func (w *ServerInterfaceWrapper) ListPendingRiders(ctx echo.Context) error {
	return w.Handler.ListPendingRiders(ctx)
}

func (w *ServerInterfaceWrapper) ListApprovedRiders(ctx echo.Context) error {
	return w.Handler.ListApprovedRiders(ctx)
}

func (w *ServerInterfaceWrapper) ReviewApplication(ctx echo.Context) error {
	var id uuid.UUID
	if err := bindPath(ctx, "id", &id); err != nil {
		return err
	}
	return w.Handler.ReviewApplication(ctx, id)
}

func (w *ServerInterfaceWrapper) AssignRider(ctx echo.Context) error {
	var parcelID uuid.UUID
	if err := bindPath(ctx, "parcelId", &parcelID); err != nil {
		return err
	}
	return w.Handler.AssignRider(ctx, parcelID)
}

func (w *ServerInterfaceWrapper) ListPayments(ctx echo.Context) error {
	var params ListPaymentsParams
	if err := bindQuery(ctx, "email", &params.Email); err != nil {
		return err
	}
	return w.Handler.ListPayments(ctx, params)
}

func (w *ServerInterfaceWrapper) RecordPayment(ctx echo.Context) error {
	return w.Handler.RecordPayment(ctx)
}

func (w *ServerInterfaceWrapper) CreatePaymentIntent(ctx echo.Context) error {
	return w.Handler.CreatePaymentIntent(ctx)
}

func (w *ServerInterfaceWrapper) RecordTracking(ctx echo.Context) error {
	return w.Handler.RecordTracking(ctx)
}

func (w *ServerInterfaceWrapper) ListTracking(ctx echo.Context) error {
	var trackingID string
	if err := bindPath(ctx, "trackingId", &trackingID); err != nil {
		return err
	}
	return w.Handler.ListTracking(ctx, trackingID)
}

// Guards are the middleware chains routes are registered with. Each chain
// starts with authentication, so a rejected credential stops the request
// before role checks, validation or the handler run.
type Guards struct {
	Authenticated []echo.MiddlewareFunc
	Staff         []echo.MiddlewareFunc
	Admin         []echo.MiddlewareFunc
}

// RegisterHandlers adds every API route to router.
func RegisterHandlers(router *echo.Echo, si ServerInterface, guards Guards) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.GET("/health", w.GetHealth)
	router.GET("/openapi.yaml", serveOpenAPI)

	router.POST("/users", w.RegisterUser, guards.Authenticated...)
	router.GET("/users/:user/role", w.GetUserRole, guards.Authenticated...)
	router.PATCH("/users/:user/role", w.SetUserRole, guards.Admin...)

	router.GET("/parcels", w.ListParcels, guards.Authenticated...)
	router.POST("/parcels", w.CreateParcel, guards.Authenticated...)
	router.GET("/parcels/pending/:email", w.ListPendingParcels, guards.Authenticated...)
	router.DELETE("/parcels/:id", w.DeleteParcel, guards.Authenticated...)
	router.PATCH("/parcels/:id/deliver", w.DeliverParcel, guards.Staff...)

	router.GET("/riders", w.ListRiders, guards.Admin...)
	router.POST("/riders", w.ApplyAsRider, guards.Authenticated...)
	router.GET("/riders/pending", w.ListPendingRiders, guards.Admin...)
	router.GET("/riders/approved", w.ListApprovedRiders, guards.Admin...)
	router.PATCH("/riders/update-status/:id", w.ReviewApplication, guards.Admin...)

	router.PATCH("/assign-rider/:parcelId", w.AssignRider, guards.Admin...)

	router.GET("/payments", w.ListPayments, guards.Authenticated...)
	router.POST("/payments", w.RecordPayment, guards.Authenticated...)
	router.POST("/create-payment-intent", w.CreatePaymentIntent, guards.Authenticated...)

	router.POST("/tracking", w.RecordTracking, guards.Staff...)
	router.GET("/tracking/:trackingId", w.ListTracking, guards.Authenticated...)
}
