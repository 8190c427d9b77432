package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"jobboard-service/internal/model"
)

type JobOfferRepository interface {
	Create(ctx context.Context, offer *model.JobOffer) (*model.JobOffer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.JobOffer, error)
	ListByDateAsc(ctx context.Context) ([]model.JobOffer, error)
	Update(ctx context.Context, id uuid.UUID, columns map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type postgresJobOfferRepository struct {
	db *sqlx.DB
}

func NewPostgresJobOfferRepository(db *sqlx.DB) JobOfferRepository {
	return &postgresJobOfferRepository{db: db}
}

func (r *postgresJobOfferRepository) Create(ctx context.Context, offer *model.JobOffer) (*model.JobOffer, error) {
	query := `
		INSERT INTO job_offers (author_id, title, position, firm, dimensions, description, city, street, number, tags, logo_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		offer.AuthorID, offer.Title, offer.Position, offer.Firm, offer.Dimensions,
		offer.Description, offer.City, offer.Street, offer.Number, offer.Tags, offer.LogoPath,
	)
	err := row.Scan(&offer.ID, &offer.CreatedAt)

	if err != nil {
		return nil, err
	}

	return offer, nil
}

func (r *postgresJobOfferRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.JobOffer, error) {
	var offer model.JobOffer
	query := `
		SELECT id, author_id, title, position, firm, dimensions, description, city, street, number, tags, logo_path, created_at
		FROM job_offers WHERE id = $1
	`
	err := r.db.GetContext(ctx, &offer, query, id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return &offer, nil
}

func (r *postgresJobOfferRepository) ListByDateAsc(ctx context.Context) ([]model.JobOffer, error) {
	var offers []model.JobOffer
	query := `
		SELECT id, author_id, title, position, firm, dimensions, description, city, street, number, tags, logo_path, created_at
		FROM job_offers
		ORDER BY created_at ASC
	`
	err := r.db.SelectContext(ctx, &offers, query)

	if err != nil {
		return nil, err
	}

	if offers == nil {
		offers = []model.JobOffer{}
	}

	return offers, nil
}

// Update applies all given column values as a single SET. Column names come
// from the service layer's editable-field whitelist, never from the client.
func (r *postgresJobOfferRepository) Update(ctx context.Context, id uuid.UUID, columns map[string]interface{}) error {
	if len(columns) == 0 {
		return nil
	}

	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	sort.Strings(names)

	var setClauses []string
	var args []interface{}
	argId := 1

	for _, name := range names {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", name, argId))
		args = append(args, columns[name])
		argId++
	}

	query := fmt.Sprintf("UPDATE job_offers SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argId)
	args = append(args, id)

	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *postgresJobOfferRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM job_offers WHERE id = $1`, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
