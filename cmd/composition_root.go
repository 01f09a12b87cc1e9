package cmd

import (
	"log/slog"

	"parcels/internal/adapters/in/http"
	"parcels/internal/adapters/out/identity"
	"parcels/internal/adapters/out/postgres"
	"parcels/internal/adapters/out/stripe"
	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/domain/services"
	"parcels/internal/jobs"
)

type CompositionRoot struct {
	config    Config
	stores    *postgres.Stores
	locker    *services.RiderLocker
	verifier  *identity.JWTVerifier
	processor *stripe.Processor
	logger    *slog.Logger
}

func NewCompositionRoot(config Config, stores *postgres.Stores, logger *slog.Logger) (CompositionRoot, error) {
	verifier, err := identity.NewJWTVerifier(config.AuthJWTSecret, config.AuthJWTIssuer)
	if err != nil {
		return CompositionRoot{}, err
	}
	processor, err := stripe.NewProcessor(config.StripeSecretKey)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config: config,
		stores: stores,
		// One locker per process: every assignment saga must share it.
		locker:    services.NewRiderLocker(),
		verifier:  verifier,
		processor: processor,
		logger:    logger,
	}, nil
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.stores.Users())
}

func (c *CompositionRoot) CreateSetUserRoleCommandHandler() commands.SetUserRoleCommandHandler {
	return commands.NewSetUserRoleCommandHandler(c.stores.Users())
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	return commands.NewCreateParcelCommandHandler(c.stores.Parcels())
}

func (c *CompositionRoot) CreateApplyAsRiderCommandHandler() commands.ApplyAsRiderCommandHandler {
	return commands.NewApplyAsRiderCommandHandler(c.stores.Riders())
}

func (c *CompositionRoot) CreateReviewApplicationCommandHandler() commands.ReviewApplicationCommandHandler {
	return commands.NewReviewApplicationCommandHandler(c.stores.Riders(), c.stores.Users(), c.logger)
}

func (c *CompositionRoot) CreateAssignRiderCommandHandler() commands.AssignRiderCommandHandler {
	return commands.NewAssignRiderCommandHandler(
		c.stores.Parcels(),
		c.stores.Riders(),
		c.stores.Tracking(),
		c.locker,
		c.logger,
	)
}

func (c *CompositionRoot) CreateDeliverParcelCommandHandler() commands.DeliverParcelCommandHandler {
	return commands.NewDeliverParcelCommandHandler(
		c.stores.Parcels(),
		c.stores.Riders(),
		c.stores.Tracking(),
		c.locker,
		c.logger,
	)
}

func (c *CompositionRoot) CreateDeleteParcelCommandHandler() commands.DeleteParcelCommandHandler {
	return commands.NewDeleteParcelCommandHandler(c.stores.Parcels())
}

func (c *CompositionRoot) CreateRecordPaymentCommandHandler() commands.RecordPaymentCommandHandler {
	return commands.NewRecordPaymentCommandHandler(
		c.stores.Parcels(),
		c.stores.Payments(),
		c.stores.Tracking(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateCreatePaymentIntentCommandHandler() commands.CreatePaymentIntentCommandHandler {
	return commands.NewCreatePaymentIntentCommandHandler(c.processor, c.config.PaymentCurrency)
}

func (c *CompositionRoot) CreateRecordTrackingCommandHandler() commands.RecordTrackingCommandHandler {
	return commands.NewRecordTrackingCommandHandler(c.stores.Tracking())
}

func (c *CompositionRoot) CreateGetRoleQueryHandler() queries.GetRoleQueryHandler {
	return queries.NewGetRoleQueryHandler(c.stores.Users())
}

func (c *CompositionRoot) CreateListParcelsQueryHandler() queries.ListParcelsQueryHandler {
	return queries.NewListParcelsQueryHandler(c.stores.Parcels())
}

func (c *CompositionRoot) CreateListRidersQueryHandler() queries.ListRidersQueryHandler {
	return queries.NewListRidersQueryHandler(c.stores.Riders())
}

func (c *CompositionRoot) CreateListPaymentsQueryHandler() queries.ListPaymentsQueryHandler {
	return queries.NewListPaymentsQueryHandler(c.stores.Payments())
}

func (c *CompositionRoot) CreateListTrackingQueryHandler() queries.ListTrackingQueryHandler {
	return queries.NewListTrackingQueryHandler(c.stores.Tracking())
}

func (c *CompositionRoot) CreateFindInconsistenciesQueryHandler() queries.FindInconsistenciesQueryHandler {
	return queries.NewFindInconsistenciesQueryHandler(c.stores.DB())
}

func (c *CompositionRoot) CreateAuthGate() *http.AuthGate {
	return http.NewAuthGate(c.verifier, c.stores.Users())
}

func (c *CompositionRoot) CreateServer() *http.Server {
	return http.NewServer(http.Handlers{
		RegisterUser:        c.CreateRegisterUserCommandHandler(),
		SetUserRole:         c.CreateSetUserRoleCommandHandler(),
		CreateParcel:        c.CreateCreateParcelCommandHandler(),
		ApplyAsRider:        c.CreateApplyAsRiderCommandHandler(),
		ReviewApplication:   c.CreateReviewApplicationCommandHandler(),
		AssignRider:         c.CreateAssignRiderCommandHandler(),
		DeliverParcel:       c.CreateDeliverParcelCommandHandler(),
		DeleteParcel:        c.CreateDeleteParcelCommandHandler(),
		RecordPayment:       c.CreateRecordPaymentCommandHandler(),
		CreatePaymentIntent: c.CreateCreatePaymentIntentCommandHandler(),
		RecordTracking:      c.CreateRecordTrackingCommandHandler(),

		GetRole:      c.CreateGetRoleQueryHandler(),
		ListParcels:  c.CreateListParcelsQueryHandler(),
		ListRiders:   c.CreateListRidersQueryHandler(),
		ListPayments: c.CreateListPaymentsQueryHandler(),
		ListTracking: c.CreateListTrackingQueryHandler(),

		Health: c.stores,
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewReconciliationJob(c.CreateFindInconsistenciesQueryHandler(), c.config.ReconcileSchedule, c.logger),
	)
}
