// internal/repository/repository.go
package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/sanjaykumar079/farmer-backend/internal/common/database"
	"github.com/sanjaykumar079/farmer-backend/internal/common/errors"
	"github.com/sanjaykumar079/farmer-backend/internal/common/logger"
	"github.com/sanjaykumar079/farmer-backend/internal/models"
)

// Repository is the persistence layer over Postgres. All methods take the
// caller's context so request cancellation propagates into the driver.
type Repository struct {
	db     *database.PostgresClient
	logger logger.Logger
}

func New(db *database.PostgresClient, log logger.Logger) *Repository {
	return &Repository{db: db, logger: log}
}

// InsertQuery stores a new farmer query and fills in its generated ID and
// creation timestamp.
func (r *Repository) InsertQuery(ctx context.Context, query *models.Query) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO queries (farmer_id, query_text, image_url, language, crop_type, location, status, urgency)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		query.FarmerID, query.QueryText, nullable(query.ImageURL), query.Language,
		nullable(query.CropType), nullable(query.Location), query.Status, query.Urgency,
	).Scan(&query.ID, &query.CreatedAt)
	if err != nil {
		r.logger.WithError(err).Error("Failed to insert query", map[string]interface{}{
			"farmerId": query.FarmerID,
		})
		return errors.NewDatabaseInsertFailedError(err)
	}
	return nil
}

// QueryByID loads a single query with its replies.
func (r *Repository) QueryByID(ctx context.Context, id int64) (*models.Query, error) {
	query := &models.Query{}
	var imageURL, cropType, location sql.NullString

	err := r.db.QueryRow(ctx, `
		SELECT id, farmer_id, query_text, image_url, language, crop_type, location, status, urgency, created_at
		FROM queries WHERE id = $1`, id,
	).Scan(&query.ID, &query.FarmerID, &query.QueryText, &imageURL, &query.Language,
		&cropType, &location, &query.Status, &query.Urgency, &query.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewQueryNotFoundError(id)
	}
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("queries", err)
	}

	query.ImageURL = imageURL.String
	query.CropType = cropType.String
	query.Location = location.String

	replies, err := r.repliesFor(ctx, []int64{query.ID})
	if err != nil {
		return nil, err
	}
	query.Replies = replies[query.ID]
	if query.Replies == nil {
		query.Replies = []models.Reply{}
	}
	return query, nil
}

// QueriesByFarmer returns a farmer's queries newest first, each with its
// replies attached.
func (r *Repository) QueriesByFarmer(ctx context.Context, farmerID string) ([]models.Query, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, farmer_id, query_text, image_url, language, crop_type, location, status, urgency, created_at
		FROM queries WHERE farmer_id = $1 ORDER BY created_at DESC`, farmerID)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("queries", err)
	}
	defer rows.Close()

	queries, ids, err := scanQueries(rows)
	if err != nil {
		return nil, err
	}
	return r.attachReplies(ctx, queries, ids)
}

// AllQueries returns every query newest first with replies and the farmer
// profile attached, for the officer review desk.
func (r *Repository) AllQueries(ctx context.Context) ([]models.Query, error) {
	rows, err := r.db.Query(ctx, `
		SELECT q.id, q.farmer_id, q.query_text, q.image_url, q.language, q.crop_type, q.location,
		       q.status, q.urgency, q.created_at,
		       p.id, p.role, p.full_name, p.email, p.phone, p.location, p.created_at
		FROM queries q
		LEFT JOIN profiles p ON p.id = q.farmer_id
		ORDER BY q.created_at DESC`)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("queries", err)
	}
	defer rows.Close()

	var queries []models.Query
	var ids []int64
	for rows.Next() {
		var q models.Query
		var imageURL, cropType, location sql.NullString
		var pID, pRole, pName, pEmail, pPhone, pLocation sql.NullString
		var pCreated sql.NullTime

		if err := rows.Scan(&q.ID, &q.FarmerID, &q.QueryText, &imageURL, &q.Language,
			&cropType, &location, &q.Status, &q.Urgency, &q.CreatedAt,
			&pID, &pRole, &pName, &pEmail, &pPhone, &pLocation, &pCreated); err != nil {
			return nil, errors.NewQueryExecutionFailedError("queries", err)
		}

		q.ImageURL = imageURL.String
		q.CropType = cropType.String
		q.Location = location.String
		if pID.Valid {
			q.Farmer = &models.Profile{
				ID:        pID.String,
				Role:      pRole.String,
				FullName:  pName.String,
				Email:     pEmail.String,
				Phone:     pPhone.String,
				Location:  pLocation.String,
				CreatedAt: pCreated.Time,
			}
		}
		queries = append(queries, q)
		ids = append(ids, q.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("queries", err)
	}

	return r.attachReplies(ctx, queries, ids)
}

// InsertReply stores a reply and fills in its generated ID and timestamp.
func (r *Repository) InsertReply(ctx context.Context, reply *models.Reply) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO replies (query_id, officer_id, response_text)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		reply.QueryID, nullable(reply.OfficerID), reply.ResponseText,
	).Scan(&reply.ID, &reply.CreatedAt)
	if err != nil {
		r.logger.WithError(err).Error("Failed to insert reply", map[string]interface{}{
			"queryId": reply.QueryID,
		})
		return errors.NewDatabaseInsertFailedError(err)
	}
	return nil
}

// UpdateQueryStatus flips a query's status. Returns QUERY_NOT_FOUND when the
// query does not exist.
func (r *Repository) UpdateQueryStatus(ctx context.Context, queryID int64, status string) error {
	result, err := r.db.Exec(ctx, `UPDATE queries SET status = $1 WHERE id = $2`, status, queryID)
	if err != nil {
		return errors.NewQueryExecutionFailedError("queries", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewQueryExecutionFailedError("queries", err)
	}
	if affected == 0 {
		return errors.NewQueryNotFoundError(queryID)
	}
	return nil
}

// ProfileByID loads a user profile.
func (r *Repository) ProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	profile := &models.Profile{}
	var phone, location sql.NullString

	err := r.db.QueryRow(ctx, `
		SELECT id, role, full_name, email, phone, location, created_at
		FROM profiles WHERE id = $1`, id,
	).Scan(&profile.ID, &profile.Role, &profile.FullName, &profile.Email, &phone, &location, &profile.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewProfileNotFoundError(id)
	}
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("profiles", err)
	}

	profile.Phone = phone.String
	profile.Location = location.String
	return profile, nil
}

// UpsertProfile creates or refreshes a profile row.
func (r *Repository) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO profiles (id, role, full_name, email, phone, location)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			role = EXCLUDED.role,
			full_name = EXCLUDED.full_name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			location = EXCLUDED.location
		RETURNING created_at`,
		profile.ID, profile.Role, profile.FullName, profile.Email,
		nullable(profile.Phone), nullable(profile.Location),
	).Scan(&profile.CreatedAt)
	if err != nil {
		return errors.NewDatabaseInsertFailedError(err)
	}
	return nil
}

// repliesFor loads replies for a set of query IDs, newest first, grouped by
// query.
func (r *Repository) repliesFor(ctx context.Context, queryIDs []int64) (map[int64][]models.Reply, error) {
	grouped := make(map[int64][]models.Reply)
	if len(queryIDs) == 0 {
		return grouped, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, query_id, officer_id, response_text, created_at
		FROM replies WHERE query_id = ANY($1) ORDER BY created_at DESC`, pq.Array(queryIDs))
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("replies", err)
	}
	defer rows.Close()

	for rows.Next() {
		var reply models.Reply
		var officerID sql.NullString
		if err := rows.Scan(&reply.ID, &reply.QueryID, &officerID, &reply.ResponseText, &reply.CreatedAt); err != nil {
			return nil, errors.NewQueryExecutionFailedError("replies", err)
		}
		reply.OfficerID = officerID.String
		grouped[reply.QueryID] = append(grouped[reply.QueryID], reply)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("replies", err)
	}
	return grouped, nil
}

func (r *Repository) attachReplies(ctx context.Context, queries []models.Query, ids []int64) ([]models.Query, error) {
	grouped, err := r.repliesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range queries {
		if replies, ok := grouped[queries[i].ID]; ok {
			queries[i].Replies = replies
		} else {
			queries[i].Replies = []models.Reply{}
		}
	}
	return queries, nil
}

func scanQueries(rows *sql.Rows) ([]models.Query, []int64, error) {
	var queries []models.Query
	var ids []int64
	for rows.Next() {
		var q models.Query
		var imageURL, cropType, location sql.NullString
		if err := rows.Scan(&q.ID, &q.FarmerID, &q.QueryText, &imageURL, &q.Language,
			&cropType, &location, &q.Status, &q.Urgency, &q.CreatedAt); err != nil {
			return nil, nil, errors.NewQueryExecutionFailedError("queries", err)
		}
		q.ImageURL = imageURL.String
		q.CropType = cropType.String
		q.Location = location.String
		queries = append(queries, q)
		ids = append(ids, q.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, errors.NewQueryExecutionFailedError("queries", err)
	}
	return queries, ids, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
