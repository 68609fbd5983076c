package repository

import (
	"context"

	"ecotrade/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ServiceRequestRepository struct {
	db *pgxpool.Pool
}

func NewServiceRequestRepository(db *pgxpool.Pool) *ServiceRequestRepository {
	return &ServiceRequestRepository{db: db}
}

func (r *ServiceRequestRepository) Create(ctx context.Context, req *model.ServiceRequest) error {
	query := `
        INSERT INTO service_requests (id, type, name, email, phone, description, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
        RETURNING created_at, updated_at
    `

	err := r.db.QueryRow(ctx, query,
		req.ID,
		req.Type,
		req.Name,
		req.Email,
		req.Phone,
		req.Description,
		req.Status,
	).Scan(&req.CreatedAt, &req.UpdatedAt)

	return mapError(err)
}

func (r *ServiceRequestRepository) FindByID(ctx context.Context, id string) (*model.ServiceRequest, error) {
	query := `
        SELECT id, type, name, email, phone, description, status, created_at, updated_at
        FROM service_requests
        WHERE id = $1
    `

	var req model.ServiceRequest
	err := r.db.QueryRow(ctx, query, id).Scan(
		&req.ID,
		&req.Type,
		&req.Name,
		&req.Email,
		&req.Phone,
		&req.Description,
		&req.Status,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &req, nil
}

// List returns requests, optionally filtered by status when status != "".
func (r *ServiceRequestRepository) List(ctx context.Context, status string) ([]model.ServiceRequest, error) {
	query := `
        SELECT id, type, name, email, phone, description, status, created_at, updated_at
        FROM service_requests
        WHERE ($1 = '' OR status = $1)
        ORDER BY created_at DESC
    `

	rows, err := r.db.Query(ctx, query, status)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	reqs := []model.ServiceRequest{}
	for rows.Next() {
		var req model.ServiceRequest
		err := rows.Scan(
			&req.ID,
			&req.Type,
			&req.Name,
			&req.Email,
			&req.Phone,
			&req.Description,
			&req.Status,
			&req.CreatedAt,
			&req.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}

	return reqs, rows.Err()
}

func (r *ServiceRequestRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `
        UPDATE service_requests
        SET status = $2, updated_at = NOW()
        WHERE id = $1
    `

	tag, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
