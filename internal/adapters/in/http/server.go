package http

import (
	"context"
	"iter"
	"net/http"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/model/payment"
	"parcels/internal/core/domain/model/rider"
	"parcels/internal/core/domain/model/tracking"
	"parcels/internal/core/domain/model/user"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// The use cases the server calls. The application layer handlers satisfy
// these; tests substitute stubs.
type (
	RegisterUserHandler interface {
		Handle(ctx context.Context, cmd commands.RegisterUserCommand) (bool, error)
	}
	SetUserRoleHandler interface {
		Handle(ctx context.Context, cmd commands.SetUserRoleCommand) error
	}
	CreateParcelHandler interface {
		Handle(ctx context.Context, cmd commands.CreateParcelCommand) (*parcel.Parcel, error)
	}
	ApplyAsRiderHandler interface {
		Handle(ctx context.Context, cmd commands.ApplyAsRiderCommand) (kernel.UUID, error)
	}
	ReviewApplicationHandler interface {
		Handle(ctx context.Context, cmd commands.ReviewApplicationCommand) (commands.ReviewApplicationResult, error)
	}
	AssignRiderHandler interface {
		Handle(ctx context.Context, cmd commands.AssignRiderCommand) (commands.AssignRiderResult, error)
	}
	DeliverParcelHandler interface {
		Handle(ctx context.Context, cmd commands.DeliverParcelCommand) (commands.DeliverParcelResult, error)
	}
	DeleteParcelHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteParcelCommand) error
	}
	RecordPaymentHandler interface {
		Handle(ctx context.Context, cmd commands.RecordPaymentCommand) (kernel.UUID, error)
	}
	CreatePaymentIntentHandler interface {
		Handle(ctx context.Context, cmd commands.CreatePaymentIntentCommand) (payment.Intent, error)
	}
	RecordTrackingHandler interface {
		Handle(ctx context.Context, cmd commands.RecordTrackingCommand) (kernel.UUID, error)
	}

	GetRoleHandler interface {
		Handle(ctx context.Context, q queries.GetRoleQuery) (queries.GetRoleQueryResponse, error)
	}
	ListParcelsHandler interface {
		Handle(ctx context.Context, q queries.ListParcelsQuery) (iter.Seq2[*parcel.Parcel, error], error)
		HandlePending(ctx context.Context, q queries.ListPendingParcelsQuery) (iter.Seq2[*parcel.Parcel, error], error)
	}
	ListRidersHandler interface {
		Handle(ctx context.Context, q queries.ListRidersQuery) (iter.Seq2[*rider.Rider, error], error)
	}
	ListPaymentsHandler interface {
		Handle(ctx context.Context, q queries.ListPaymentsQuery) (iter.Seq2[*payment.Payment, error], error)
	}
	ListTrackingHandler interface {
		Handle(ctx context.Context, q queries.ListTrackingQuery) (iter.Seq2[*tracking.Entry, error], error)
	}

	HealthChecker interface {
		Ping(ctx context.Context) error
	}
)

// Handlers groups the dependencies of Server.
type Handlers struct {
	RegisterUser        RegisterUserHandler
	SetUserRole         SetUserRoleHandler
	CreateParcel        CreateParcelHandler
	ApplyAsRider        ApplyAsRiderHandler
	ReviewApplication   ReviewApplicationHandler
	AssignRider         AssignRiderHandler
	DeliverParcel       DeliverParcelHandler
	DeleteParcel        DeleteParcelHandler
	RecordPayment       RecordPaymentHandler
	CreatePaymentIntent CreatePaymentIntentHandler
	RecordTracking      RecordTrackingHandler

	GetRole      GetRoleHandler
	ListParcels  ListParcelsHandler
	ListRiders   ListRidersHandler
	ListPayments ListPaymentsHandler
	ListTracking ListTrackingHandler

	Health HealthChecker
}

var _ ServerInterface = (*Server)(nil)

// Server implements ServerInterface on top of the application use cases.
type Server struct {
	h Handlers
}

func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}

func viewerOf(actor commands.Actor) queries.Viewer {
	return queries.Viewer{Email: actor.Email, Role: actor.Role}
}

func collect[T, R any](seq iter.Seq2[T, error], convert func(T) R) ([]R, error) {
	out := make([]R, 0)
	for item, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, convert(item))
	}
	return out, nil
}

func optionalEmail(raw *string) (*kernel.Email, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	email, err := kernel.NewEmail(*raw)
	if err != nil {
		return nil, err
	}
	return &email, nil
}

func toKernelUUID(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(ctx echo.Context) error {
	if s.h.Health != nil {
		if err := s.h.Health.Ping(ctx.Request().Context()); err != nil {
			return ctx.JSON(http.StatusServiceUnavailable, Error{
				Code:    http.StatusServiceUnavailable,
				Message: "Database is unavailable",
			})
		}
	}
	return ctx.String(http.StatusOK, "Healthy")
}

// RegisterUser handles POST /users - records the caller on first sign-in.
func (s *Server) RegisterUser(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRegisterUserCommand(actor.Email)
	if err != nil {
		return respondError(ctx, err)
	}

	inserted, err := s.h.RegisterUser.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, RegisterUserResponse{Inserted: inserted})
}

// GetUserRole handles GET /users/{user}/role.
func (s *Server) GetUserRole(ctx echo.Context, rawEmail string) error {
	email, err := kernel.NewEmail(rawEmail)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetRoleQuery(email)
	if err != nil {
		return respondError(ctx, err)
	}

	response, err := s.h.GetRole.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Role{Email: response.Email.String(), Role: response.Role.String()})
}

// SetUserRole handles PATCH /users/{user}/role.
func (s *Server) SetUserRole(ctx echo.Context, id uuid.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var body SetRoleRequest
	if err = ctx.Bind(&body); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	userID, err := toKernelUUID(id)
	if err != nil {
		return respondError(ctx, err)
	}
	role, err := user.ParseRole(body.Role)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewSetUserRoleCommand(actor, userID, role)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.h.SetUserRole.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ListParcels handles GET /parcels?email=.
func (s *Server) ListParcels(ctx echo.Context, params ListParcelsParams) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	owner, err := optionalEmail(params.Email)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewListParcelsQuery(viewerOf(actor), owner)
	if err != nil {
		return respondError(ctx, err)
	}

	seq, err := s.h.ListParcels.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response, err := collect(seq, toParcel)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateParcel handles POST /parcels. The caller becomes the owner.
func (s *Server) CreateParcel(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var body NewParcel
	if err = ctx.Bind(&body); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateParcelCommand(actor.Email, parcel.Details{
		Title:           body.Title,
		Kind:            body.Kind,
		WeightKg:        body.WeightKg,
		SenderRegion:    body.SenderRegion,
		ReceiverName:    body.ReceiverName,
		ReceiverRegion:  body.ReceiverRegion,
		ReceiverAddress: body.ReceiverAddress,
	}, body.Cost)
	if err != nil {
		return respondError(ctx, err)
	}

	created, err := s.h.CreateParcel.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toParcel(created))
}

// ListPendingParcels handles GET /parcels/pending/{email}.
func (s *Server) ListPendingParcels(ctx echo.Context, rawEmail string) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	riderEmail, err := kernel.NewEmail(rawEmail)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewListPendingParcelsQuery(viewerOf(actor), riderEmail)
	if err != nil {
		return respondError(ctx, err)
	}

	seq, err := s.h.ListParcels.HandlePending(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response, err := collect(seq, toParcel)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// DeleteParcel handles DELETE /parcels/{id}. Only the owner or an admin may
// withdraw a parcel, and only before it is assigned or paid for; later states
// answer 409 Conflict.
func (s *Server) DeleteParcel(ctx echo.Context, rawID uuid.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	parcelID, err := toKernelUUID(rawID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewDeleteParcelCommand(actor, parcelID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.h.DeleteParcel.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeliverParcel handles PATCH /parcels/{id}/deliver. The parcel becomes
// Delivered and its rider idle; a 207 means the parcel was delivered but the
// rider could not be released.
func (s *Server) DeliverParcel(ctx echo.Context, rawID uuid.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	parcelID, err := toKernelUUID(rawID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewDeliverParcelCommand(actor, parcelID)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.h.DeliverParcel.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, DeliverResult{
		Success:    true,
		ParcelID:   result.ParcelID.Bytes(),
		RiderID:    result.RiderID.Bytes(),
		RiderEmail: result.RiderEmail.String(),
	})
}

func (s *Server) listRiders(ctx echo.Context, status rider.Status) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewListRidersQuery(viewerOf(actor), status)
	if err != nil {
		return respondError(ctx, err)
	}

	seq, err := s.h.ListRiders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response, err := collect(seq, toRider)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// ListRiders handles GET /riders?status=.
func (s *Server) ListRiders(ctx echo.Context, params ListRidersParams) error {
	status := rider.UnknownStatus
	if params.Status != nil && *params.Status != "" {
		parsed, err := rider.ParseStatus(*params.Status)
		if err != nil {
			return respondError(ctx, err)
		}
		status = parsed
	}
	return s.listRiders(ctx, status)
}

// ListPendingRiders handles GET /riders/pending.
func (s *Server) ListPendingRiders(ctx echo.Context) error {
	return s.listRiders(ctx, rider.Pending)
}

// ListApprovedRiders handles GET /riders/approved.
func (s *Server) ListApprovedRiders(ctx echo.Context) error {
	return s.listRiders(ctx, rider.Approved)
}

// ApplyAsRider handles POST /riders. The caller is the applicant.
func (s *Server) ApplyAsRider(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var body RiderApplication
	if err = ctx.Bind(&body); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewApplyAsRiderCommand(actor.Email, rider.Profile{
		Name:    body.Name,
		Phone:   body.Phone,
		Region:  body.Region,
		Vehicle: body.Vehicle,
	})
	if err != nil {
		return respondError(ctx, err)
	}

	id, err := s.h.ApplyAsRider.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{InsertedID: id.Bytes()})
}

// ReviewApplication handles PATCH /riders/update-status/{id}.
func (s *Server) ReviewApplication(ctx echo.Context, id uuid.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var body ReviewRequest
	if err = ctx.Bind(&body); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	riderID, err := toKernelUUID(id)
	if err != nil {
		return respondError(ctx, err)
	}
	action, err := rider.ParseAction(body.Action)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewReviewApplicationCommand(actor, riderID, action)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.h.ReviewApplication.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ReviewResult{
		Success:      true,
		RiderID:      result.RiderID.Bytes(),
		Email:        result.Email.String(),
		Status:       result.Status.String(),
		RolePromoted: result.RolePromoted,
	})
}

// AssignRider handles PATCH /assign-rider/{parcelId}.
func (s *Server) AssignRider(ctx echo.Context, rawParcelID uuid.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var body AssignRequest
	if err = ctx.Bind(&body); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	parcelID, err := toKernelUUID(rawParcelID)
	if err != nil {
		return respondError(ctx, err)
	}
	riderID, err := toKernelUUID(body.RiderID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAssignRiderCommand(actor, parcelID, riderID)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.h.AssignRider.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, AssignResult{
		Success:    true,
		ParcelID:   result.ParcelID.Bytes(),
		RiderID:    result.RiderID.Bytes(),
		RiderEmail: result.RiderEmail.String(),
	})
}

// ListPayments handles GET /payments?email=.
func (s *Server) ListPayments(ctx echo.Context, params ListPaymentsParams) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	payer, err := optionalEmail(params.Email)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewListPaymentsQuery(viewerOf(actor), payer)
	if err != nil {
		return respondError(ctx, err)
	}

	seq, err := s.h.ListPayments.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response, err := collect(seq, toPayment)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// RecordPayment handles POST /payments. The caller is the payer.
func (s *Server) RecordPayment(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var body NewPayment
	if err = ctx.Bind(&body); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	parcelID, err := toKernelUUID(body.ParcelID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRecordPaymentCommand(actor, parcelID, body.Amount, body.PaymentMethod, body.TransactionID)
	if err != nil {
		return respondError(ctx, err)
	}

	id, err := s.h.RecordPayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{InsertedID: id.Bytes()})
}

// CreatePaymentIntent handles POST /create-payment-intent.
func (s *Server) CreatePaymentIntent(ctx echo.Context) error {
	var body PaymentIntentRequest
	if err := ctx.Bind(&body); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreatePaymentIntentCommand(body.AmountInCents)
	if err != nil {
		return respondError(ctx, err)
	}

	intent, err := s.h.CreatePaymentIntent.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, PaymentIntent{ClientSecret: intent.ClientSecret})
}

// RecordTracking handles POST /tracking. The caller is recorded as the
// author of the entry.
func (s *Server) RecordTracking(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var body NewTrackingEntry
	if err = ctx.Bind(&body); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	var parcelID *kernel.UUID
	if body.ParcelID != nil {
		id, err := toKernelUUID(*body.ParcelID)
		if err != nil {
			return respondError(ctx, err)
		}
		parcelID = &id
	}

	cmd, err := commands.NewRecordTrackingCommand(body.TrackingID, parcelID, body.Status, body.Message, actor.Email.String())
	if err != nil {
		return respondError(ctx, err)
	}

	id, err := s.h.RecordTracking.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{InsertedID: id.Bytes()})
}

// ListTracking handles GET /tracking/{trackingId}.
func (s *Server) ListTracking(ctx echo.Context, trackingID string) error {
	if _, err := actorFrom(ctx); err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewListTrackingQuery(trackingID)
	if err != nil {
		return respondError(ctx, err)
	}

	seq, err := s.h.ListTracking.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response, err := collect(seq, toTrackingEntry)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}
