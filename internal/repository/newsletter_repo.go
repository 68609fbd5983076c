package repository

import (
	"context"

	"ecotrade/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type NewsletterRepository struct {
	db *pgxpool.Pool
}

func NewNewsletterRepository(db *pgxpool.Pool) *NewsletterRepository {
	return &NewsletterRepository{db: db}
}

// Create inserts a subscriber. ErrDuplicate when the email is already on
// the list.
func (r *NewsletterRepository) Create(ctx context.Context, email string) (*model.NewsletterSubscriber, error) {
	query := `
        INSERT INTO newsletter_subscribers (email, created_at)
        VALUES ($1, NOW())
        RETURNING id, email, created_at
    `

	var s model.NewsletterSubscriber
	err := r.db.QueryRow(ctx, query, email).Scan(&s.ID, &s.Email, &s.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

func (r *NewsletterRepository) FindByEmail(ctx context.Context, email string) (*model.NewsletterSubscriber, error) {
	query := `
        SELECT id, email, created_at
        FROM newsletter_subscribers
        WHERE email = $1
    `

	var s model.NewsletterSubscriber
	err := r.db.QueryRow(ctx, query, email).Scan(&s.ID, &s.Email, &s.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}
