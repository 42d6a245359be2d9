package repositories

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"edumart/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ResultRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    ResultRepository
	orgID   uuid.UUID
	context context.Context
}

func (suite *ResultRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewResultRepo(mock)
	suite.orgID = uuid.New()
	suite.context = context.Background()
}

func (suite *ResultRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestResultRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ResultRepoTestSuite))
}

// A created record reads back through GetByID with the same field values,
// including the subject entries round-tripped through the JSONB column.
func (suite *ResultRepoTestSuite) TestCreateThenGetByID_RoundTrips() {
	now := time.Now()
	result := &models.Result{
		ID:        uuid.New(),
		OrgID:     suite.orgID,
		StudentID: uuid.New(),
		ExamID:    uuid.New(),
		Session:   "2025-2026",
		Subjects: []models.SubjectResult{
			{Subject: "Mathematics", Marks: 92, Grade: "A+"},
			{Subject: "English", Marks: 78, Grade: "A"},
		},
		GPA:      4.75,
		IsPassed: true,
	}
	subjects, err := json.Marshal(result.Subjects)
	require.NoError(suite.T(), err)

	suite.mock.ExpectExec(`INSERT INTO results`).
		WithArgs(result.ID, result.OrgID, result.StudentID, result.ExamID, result.Session,
			subjects, result.GPA, result.IsPassed).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	rows := pgxmock.NewRows([]string{
		"id", "org_id", "student_id", "exam_id", "session", "subjects", "gpa", "is_passed", "created_at", "updated_at",
	}).AddRow(result.ID, result.OrgID, result.StudentID, result.ExamID, result.Session,
		subjects, result.GPA, result.IsPassed, now, now)

	suite.mock.ExpectQuery(`SELECT .+ FROM results WHERE org_id = \$1 AND id = \$2`).
		WithArgs(suite.orgID, result.ID).
		WillReturnRows(rows)

	require.NoError(suite.T(), suite.repo.Create(suite.context, result))

	got, err := suite.repo.GetByID(suite.context, suite.orgID, result.ID)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), result.ID, got.ID)
	assert.Equal(suite.T(), result.OrgID, got.OrgID)
	assert.Equal(suite.T(), result.StudentID, got.StudentID)
	assert.Equal(suite.T(), result.ExamID, got.ExamID)
	assert.Equal(suite.T(), result.Session, got.Session)
	assert.Equal(suite.T(), result.Subjects, got.Subjects)
	assert.Equal(suite.T(), result.GPA, got.GPA)
	assert.Equal(suite.T(), result.IsPassed, got.IsPassed)
}

func (suite *ResultRepoTestSuite) TestListByStudent_ScopedToTenant() {
	studentID := uuid.New()
	now := time.Now()
	subjects, err := json.Marshal([]models.SubjectResult{{Subject: "Physics", Marks: 85, Grade: "A"}})
	require.NoError(suite.T(), err)

	rows := pgxmock.NewRows([]string{
		"id", "org_id", "student_id", "exam_id", "session", "subjects", "gpa", "is_passed", "created_at", "updated_at",
	}).AddRow(uuid.New(), suite.orgID, studentID, uuid.New(), "2025-2026",
		subjects, 4.0, true, now, now)

	suite.mock.ExpectQuery(`(?s)SELECT .+ FROM results.+WHERE org_id = \$1 AND student_id = \$2`).
		WithArgs(suite.orgID, studentID, 20, 0).
		WillReturnRows(rows)

	results, err := suite.repo.ListByStudent(suite.context, suite.orgID, studentID, 20, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), results, 1)
	assert.Equal(suite.T(), studentID, results[0].StudentID)
}
