package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanjaykumar079/farmer-backend/internal/common/database"
	"github.com/sanjaykumar079/farmer-backend/internal/common/errors"
	"github.com/sanjaykumar079/farmer-backend/internal/common/logger"
	"github.com/sanjaykumar079/farmer-backend/internal/models"
)

func newTestRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := New(&database.PostgresClient{DB: db}, logger.NewTestLogger(t))
	return repo, mock
}

func TestInsertQuery(t *testing.T) {
	repo, mock := newTestRepo(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO queries`).
		WithArgs("farmer-1", "yellow spots on leaves", sqlmock.AnyArg(), "en",
			sqlmock.AnyArg(), sqlmock.AnyArg(), models.QueryStatusPending, models.UrgencyMedium).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), now))

	query := &models.Query{
		FarmerID:  "farmer-1",
		QueryText: "yellow spots on leaves",
		Language:  "en",
		Status:    models.QueryStatusPending,
		Urgency:   models.UrgencyMedium,
	}
	require.NoError(t, repo.InsertQuery(context.Background(), query))

	assert.Equal(t, int64(7), query.ID)
	assert.Equal(t, now, query.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueriesByFarmerOrdersNewestFirst(t *testing.T) {
	repo, mock := newTestRepo(t)
	now := time.Now()

	queryCols := []string{"id", "farmer_id", "query_text", "image_url", "language", "crop_type", "location", "status", "urgency", "created_at"}
	mock.ExpectQuery(`FROM queries WHERE farmer_id = \$1 ORDER BY created_at DESC`).
		WithArgs("farmer-1").
		WillReturnRows(sqlmock.NewRows(queryCols).
			AddRow(int64(2), "farmer-1", "second", nil, "en", nil, nil, "answered", "low", now).
			AddRow(int64(1), "farmer-1", "first", nil, "en", "rice", nil, "pending", "high", now.Add(-time.Hour)))

	replyCols := []string{"id", "query_id", "officer_id", "response_text", "created_at"}
	mock.ExpectQuery(`FROM replies WHERE query_id = ANY`).
		WillReturnRows(sqlmock.NewRows(replyCols).
			AddRow(int64(10), int64(2), nil, "advisory text", now))

	queries, err := repo.QueriesByFarmer(context.Background(), "farmer-1")
	require.NoError(t, err)
	require.Len(t, queries, 2)

	assert.Equal(t, int64(2), queries[0].ID)
	require.Len(t, queries[0].Replies, 1)
	assert.Equal(t, "advisory text", queries[0].Replies[0].ResponseText)
	assert.Empty(t, queries[0].Replies[0].OfficerID)

	assert.Equal(t, "rice", queries[1].CropType)
	assert.Empty(t, queries[1].Replies)
	assert.NotNil(t, queries[1].Replies)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateQueryStatusNotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec(`UPDATE queries SET status`).
		WithArgs(models.QueryStatusAnswered, int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateQueryStatus(context.Background(), 99, models.QueryStatusAnswered)
	require.Error(t, err)

	var stdErr *errors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeQueryNotFound, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileByIDNotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`FROM profiles WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "role", "full_name", "email", "phone", "location", "created_at"}))

	_, err := repo.ProfileByID(context.Background(), "missing")
	require.Error(t, err)

	var stdErr *errors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeProfileNotFound, stdErr.Code)
}

func TestInsertReply(t *testing.T) {
	repo, mock := newTestRepo(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO replies`).
		WithArgs(int64(7), sqlmock.AnyArg(), "please apply fungicide").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), now))

	reply := &models.Reply{QueryID: 7, OfficerID: "officer-1", ResponseText: "please apply fungicide"}
	require.NoError(t, repo.InsertReply(context.Background(), reply))

	assert.Equal(t, int64(3), reply.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllQueriesAttachesFarmerProfile(t *testing.T) {
	repo, mock := newTestRepo(t)
	now := time.Now()

	cols := []string{
		"id", "farmer_id", "query_text", "image_url", "language", "crop_type", "location",
		"status", "urgency", "created_at",
		"p_id", "p_role", "p_full_name", "p_email", "p_phone", "p_location", "p_created_at",
	}
	mock.ExpectQuery(`LEFT JOIN profiles p ON p.id = q.farmer_id`).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(1), "farmer-1", "help", nil, "te", nil, nil, "pending", "medium", now,
				"farmer-1", "farmer", "Ravi Kumar", "ravi@example.com", nil, "Warangal", now))

	mock.ExpectQuery(`FROM replies WHERE query_id = ANY`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "query_id", "officer_id", "response_text", "created_at"}))

	queries, err := repo.AllQueries(context.Background())
	require.NoError(t, err)
	require.Len(t, queries, 1)

	require.NotNil(t, queries[0].Farmer)
	assert.Equal(t, "Ravi Kumar", queries[0].Farmer.FullName)
	assert.Equal(t, "Warangal", queries[0].Farmer.Location)
	assert.NoError(t, mock.ExpectationsWereMet())
}
