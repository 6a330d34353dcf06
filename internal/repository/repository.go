package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/advisory-service/internal/models"
	"github.com/lib/pq"
)

// ErrNotFound is returned when a row does not exist
var ErrNotFound = errors.New("not found")

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateContactRequest stores a new contact request. Phone is stored as given;
// encrypting it is the caller's concern.
func (r *Repository) CreateContactRequest(ctx context.Context, req *models.ContactRequest) error {
	query := `
		INSERT INTO advisory.contact_requests (name, email, phone, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, FALSE, CURRENT_TIMESTAMP)
		RETURNING id, is_read, created_at`
	err := r.db.QueryRowContext(ctx, query, req.Name, req.Email, nullString(req.Phone), req.Message).
		Scan(&req.ID, &req.IsRead, &req.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create contact request: %w", err)
	}
	return nil
}

// ListContactRequests returns requests newest first, optionally only unread ones
func (r *Repository) ListContactRequests(ctx context.Context, unreadOnly bool) ([]models.ContactRequest, error) {
	query := `
		SELECT id, name, email, phone, message, is_read, created_at
		FROM advisory.contact_requests
		WHERE ($1 = FALSE OR is_read = FALSE)
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact requests: %w", err)
	}
	defer rows.Close()

	var out []models.ContactRequest
	for rows.Next() {
		var (
			req   models.ContactRequest
			phone sql.NullString
		)
		if err := rows.Scan(&req.ID, &req.Name, &req.Email, &phone, &req.Message, &req.IsRead, &req.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact request: %w", err)
		}
		req.Phone = phone.String
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list contact requests: %w", err)
	}
	return out, nil
}

// MarkRead flags a single request as read
func (r *Repository) MarkRead(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE advisory.contact_requests SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark contact request %d read: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to mark contact request %d read: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkReadBatch flags every listed request as read
func (r *Repository) MarkReadBatch(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `UPDATE advisory.contact_requests SET is_read = TRUE WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to mark contact requests read: %w", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
