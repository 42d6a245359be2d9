package repositories

import (
	"context"
	"testing"
	"time"

	"edumart/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type OrganizationRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    OrganizationRepository
	orgID   uuid.UUID
	context context.Context
}

func (suite *OrganizationRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewOrganizationRepo(mock)
	suite.orgID = uuid.New()
	suite.context = context.Background()
}

func (suite *OrganizationRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestOrganizationRepoTestSuite(t *testing.T) {
	suite.Run(t, new(OrganizationRepoTestSuite))
}

func (suite *OrganizationRepoTestSuite) TestCreate_Success() {
	org := &models.Organization{
		ID:                 suite.orgID,
		Name:               "Green Valley School",
		Subdomain:          "greenvalley",
		Plan:               "standard",
		SubscriptionStatus: models.SubscriptionActive,
	}

	suite.mock.ExpectExec(`INSERT INTO organizations`).
		WithArgs(org.ID, org.Name, org.Subdomain, org.CustomDomain, org.LogoURL, org.Plan, org.SubscriptionStatus, org.ExpiresAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, org)
	assert.NoError(suite.T(), err)
}

func (suite *OrganizationRepoTestSuite) TestGetBySubdomain_Found() {
	now := time.Now()
	rows := pgxmock.NewRows([]string{
		"id", "name", "subdomain", "custom_domain", "logo_url", "plan",
		"subscription_status", "expires_at", "created_at", "updated_at",
	}).AddRow(suite.orgID, "Green Valley School", "greenvalley", nil, nil, "standard",
		models.SubscriptionActive, nil, now, now)

	suite.mock.ExpectQuery(`SELECT .+ FROM organizations WHERE subdomain = \$1`).
		WithArgs("greenvalley").
		WillReturnRows(rows)

	org, err := suite.repo.GetBySubdomain(suite.context, "greenvalley")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.orgID, org.ID)
	assert.Equal(suite.T(), "greenvalley", org.Subdomain)
}

func (suite *OrganizationRepoTestSuite) TestGetBySubdomain_NotFound() {
	suite.mock.ExpectQuery(`SELECT .+ FROM organizations WHERE subdomain = \$1`).
		WithArgs("nope").
		WillReturnError(pgx.ErrNoRows)

	org, err := suite.repo.GetBySubdomain(suite.context, "nope")
	assert.Nil(suite.T(), org)
	assert.ErrorIs(suite.T(), err, pgx.ErrNoRows)
}

func (suite *OrganizationRepoTestSuite) TestList() {
	now := time.Now()
	rows := pgxmock.NewRows([]string{
		"id", "name", "subdomain", "custom_domain", "logo_url", "plan",
		"subscription_status", "expires_at", "created_at", "updated_at",
	}).
		AddRow(uuid.New(), "School A", "schoola", nil, nil, "standard", models.SubscriptionActive, nil, now, now).
		AddRow(uuid.New(), "School B", "schoolb", nil, nil, "standard", models.SubscriptionExpired, nil, now, now)

	suite.mock.ExpectQuery(`(?s)SELECT .+ FROM organizations.+ORDER BY created_at DESC`).
		WithArgs(20, 0).
		WillReturnRows(rows)

	orgs, err := suite.repo.List(suite.context, 20, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), orgs, 2)
}

func (suite *OrganizationRepoTestSuite) TestExpireOverdue() {
	suite.mock.ExpectExec(`(?s)UPDATE organizations.+SET subscription_status = 'expired'`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	n, err := suite.repo.ExpireOverdue(suite.context)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(3), n)
}
