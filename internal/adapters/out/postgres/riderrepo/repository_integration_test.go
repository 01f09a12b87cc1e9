package riderrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"parcels/internal/adapters/out/postgres/pgtest"
	"parcels/internal/adapters/out/postgres/riderrepo"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/rider"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type RiderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *riderrepo.GormRiderRepository
}

func (suite *RiderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *RiderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.repository = riderrepo.NewGormRiderRepository(suite.database.DB)
}

func (suite *RiderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *RiderRepositoryIntegrationTestSuite) newApplication(email string, createdAt time.Time) *rider.Rider {
	r, err := rider.NewRider(kernel.NewUUID(), kernel.MustNewEmail(email),
		rider.Profile{Name: "Ayesha", Phone: "+8801700000000", Region: "Dhaka", Vehicle: "bike"}, createdAt)
	suite.Require().NoError(err)
	return r
}

func (suite *RiderRepositoryIntegrationTestSuite) apply(email string) *rider.Rider {
	r := suite.newApplication(email, time.Now().UTC())
	suite.Require().NoError(suite.repository.Apply(context.Background(), r))
	return r
}

func (suite *RiderRepositoryIntegrationTestSuite) TestApply_PersistsPendingIdle() {
	application := suite.apply("a@x.com")

	stored, err := suite.repository.Get(context.Background(), application.ID())

	suite.Require().NoError(err)
	suite.Equal(rider.Pending, stored.Status())
	suite.Equal(rider.Idle, stored.WorkStatus())
	suite.Equal(application.Profile(), stored.Profile())
}

func (suite *RiderRepositoryIntegrationTestSuite) TestApply_OneActiveApplicationPerEmail() {
	ctx := context.Background()
	first := suite.apply("a@x.com")

	err := suite.repository.Apply(ctx, suite.newApplication("a@x.com", time.Now().UTC()))
	suite.Require().ErrorIs(err, rider.ErrAlreadyApplied)

	_, err = suite.repository.TransitionStatus(ctx, first.ID(), rider.Approve)
	suite.Require().NoError(err)
	err = suite.repository.Apply(ctx, suite.newApplication("a@x.com", time.Now().UTC()))
	suite.Require().ErrorIs(err, rider.ErrAlreadyApplied)
}

func (suite *RiderRepositoryIntegrationTestSuite) TestApply_AllowedAgainAfterDecline() {
	ctx := context.Background()
	first := suite.apply("a@x.com")

	_, err := suite.repository.TransitionStatus(ctx, first.ID(), rider.Decline)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Apply(ctx, suite.newApplication("a@x.com", time.Now().UTC())))
}

func (suite *RiderRepositoryIntegrationTestSuite) TestApply_ConcurrentApplicationsInsertOne() {
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		applied int
	)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := suite.repository.Apply(ctx, suite.newApplication("race@x.com", time.Now().UTC()))
			if err == nil {
				mu.Lock()
				applied++
				mu.Unlock()
				return
			}
			suite.ErrorIs(err, rider.ErrAlreadyApplied)
		}()
	}
	wg.Wait()

	suite.Equal(1, applied)
}

func (suite *RiderRepositoryIntegrationTestSuite) TestFindByEmail_IgnoresDeclined() {
	ctx := context.Background()
	declined := suite.apply("a@x.com")
	_, err := suite.repository.TransitionStatus(ctx, declined.ID(), rider.Decline)
	suite.Require().NoError(err)

	_, err = suite.repository.FindByEmail(ctx, declined.Email())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	current := suite.apply("a@x.com")
	found, err := suite.repository.FindByEmail(ctx, declined.Email())
	suite.Require().NoError(err)
	suite.Equal(current.ID(), found.ID())
}

func (suite *RiderRepositoryIntegrationTestSuite) TestTransitionStatus() {
	ctx := context.Background()
	application := suite.apply("a@x.com")

	approved, err := suite.repository.TransitionStatus(ctx, application.ID(), rider.Approve)
	suite.Require().NoError(err)
	suite.Equal(rider.Approved, approved.Status())
	suite.Equal(rider.Idle, approved.WorkStatus())

	_, err = suite.repository.TransitionStatus(ctx, application.ID(), rider.Decline)
	suite.Require().ErrorIs(err, rider.ErrAlreadyReviewed)
	suite.Require().ErrorIs(err, errs.ErrConflict)

	_, err = suite.repository.TransitionStatus(ctx, kernel.NewUUID(), rider.Approve)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *RiderRepositoryIntegrationTestSuite) TestSetWorkStatus_CompareAndSet() {
	ctx := context.Background()
	application := suite.apply("a@x.com")

	err := suite.repository.SetWorkStatus(ctx, application.ID(), rider.Idle, rider.Busy)
	suite.Require().ErrorIs(err, rider.ErrRiderNotApproved)

	_, err = suite.repository.TransitionStatus(ctx, application.ID(), rider.Approve)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.SetWorkStatus(ctx, application.ID(), rider.Idle, rider.Busy))

	err = suite.repository.SetWorkStatus(ctx, application.ID(), rider.Idle, rider.Busy)
	suite.Require().ErrorIs(err, rider.ErrWorkStatusChanged)

	suite.Require().NoError(suite.repository.SetWorkStatus(ctx, application.ID(), rider.Busy, rider.Idle))

	stored, err := suite.repository.Get(ctx, application.ID())
	suite.Require().NoError(err)
	suite.Equal(rider.Idle, stored.WorkStatus())

	// Releasing a rider that is not busy is reported, not ignored.
	err = suite.repository.SetWorkStatus(ctx, application.ID(), rider.Busy, rider.Idle)
	suite.Require().ErrorIs(err, rider.ErrWorkStatusChanged)

	err = suite.repository.SetWorkStatus(ctx, kernel.NewUUID(), rider.Idle, rider.Busy)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *RiderRepositoryIntegrationTestSuite) TestListByStatus_MostRecentFirstAndRestartable() {
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)
	for i, email := range []string{"old@x.com", "mid@x.com", "new@x.com"} {
		r := suite.newApplication(email, base.Add(time.Duration(i)*time.Minute))
		suite.Require().NoError(suite.repository.Apply(ctx, r))
	}
	declined := suite.apply("declined@x.com")
	_, err := suite.repository.TransitionStatus(ctx, declined.ID(), rider.Decline)
	suite.Require().NoError(err)

	seq := suite.repository.ListByStatus(ctx, rider.Pending)

	for range 2 {
		var emails []string
		for r, err := range seq {
			suite.Require().NoError(err)
			emails = append(emails, r.Email().String())
		}
		suite.Equal([]string{"new@x.com", "mid@x.com", "old@x.com"}, emails)
	}

	all := 0
	for _, err := range suite.repository.ListAll(ctx) {
		suite.Require().NoError(err)
		all++
	}
	suite.Equal(4, all)
}

func (suite *RiderRepositoryIntegrationTestSuite) TestListByStatus_EarlyBreak() {
	ctx := context.Background()
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		suite.apply(email)
	}

	seen := 0
	for _, err := range suite.repository.ListByStatus(ctx, rider.Pending) {
		suite.Require().NoError(err)
		seen++
		break
	}
	suite.Equal(1, seen)
}

func TestRiderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RiderRepositoryIntegrationTestSuite))
}
