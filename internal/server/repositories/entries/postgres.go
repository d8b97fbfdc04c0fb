package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/server/models"
)

const entryColumns = `id, user_id, title, username, password, url, notes, category, tags, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(s rowScanner) (*models.Entry, error) {
	e := &models.Entry{}
	var tags string
	if err := s.Scan(&e.ID, &e.UserID, &e.Title, &e.UserName, &e.Password,
		&e.URL, &e.Notes, &e.Category, &tags, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.Tags = models.SplitTags(tags)
	return e, nil
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.Entry) (*models.Entry, error) {
	query :=
		`INSERT INTO entries (id, user_id, title, username, password, url, notes, category, tags)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING ` + entryColumns

	out, err := scanEntry(r.db.QueryRowContext(ctx, query,
		e.ID, e.UserID, e.Title, e.UserName, e.Password, e.URL, e.Notes, e.Category, models.JoinTags(e.Tags)))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id, userID string) (*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = $1 AND user_id = $2`

	e, err := scanEntry(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE user_id = $1 ORDER BY updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Update overwrites the mutable columns of e and bumps updated_at.
func (r *PostgresRepository) Update(ctx context.Context, e *models.Entry) (*models.Entry, error) {
	query :=
		`UPDATE entries
		 SET title = $3, username = $4, password = $5, url = $6, notes = $7, category = $8, tags = $9,
		     updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING ` + entryColumns

	out, err := scanEntry(r.db.QueryRowContext(ctx, query,
		e.ID, e.UserID, e.Title, e.UserName, e.Password, e.URL, e.Notes, e.Category, models.JoinTags(e.Tags)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
