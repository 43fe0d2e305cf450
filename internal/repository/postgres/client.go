package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/openvet/clinic-api/internal/model"
	"github.com/openvet/clinic-api/pkg/errors"
)

const clientColumns = `
	id, dni, first_name, last_name, phone, email, address, active,
	created_at, updated_at
	`

func (r *clientRepository) Create(ctx context.Context, client *model.Client) error {
	client.Active = true
	client.CreatedAt = time.Now()
	client.UpdatedAt = client.CreatedAt

	query := `
		INSERT INTO clients (dni, first_name, last_name, phone, email, address, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		client.DNI,
		client.FirstName,
		client.LastName,
		client.Phone,
		client.Email,
		client.Address,
		client.Active,
		client.CreatedAt,
		client.UpdatedAt,
	).Scan(&client.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Conflict(fmt.Sprintf("a client with DNI %s already exists", client.DNI), err)
		}
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (r *clientRepository) Get(ctx context.Context, id int64) (*model.Client, error) {
	var client model.Client
	query := `SELECT` + clientColumns + `FROM clients WHERE id = $1`
	if err := r.db.GetContext(ctx, &client, query, id); err != nil {
		return nil, notFoundOr(err, "client")
	}
	return &client, nil
}

func (r *clientRepository) GetByDNI(ctx context.Context, dni string) (*model.Client, error) {
	var client model.Client
	query := `SELECT` + clientColumns + `FROM clients WHERE dni = $1`
	if err := r.db.GetContext(ctx, &client, query, dni); err != nil {
		return nil, notFoundOr(err, "client")
	}
	return &client, nil
}

func (r *clientRepository) GetByEmail(ctx context.Context, email string) (*model.Client, error) {
	var client model.Client
	query := `SELECT` + clientColumns + `FROM clients WHERE email = $1`
	if err := r.db.GetContext(ctx, &client, query, email); err != nil {
		return nil, notFoundOr(err, "client")
	}
	return &client, nil
}

func (r *clientRepository) Update(ctx context.Context, client *model.Client) error {
	client.UpdatedAt = time.Now()

	query := `
		UPDATE clients
		SET first_name = $1, last_name = $2, phone = $3, email = $4, address = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := r.db.ExecContext(ctx, query,
		client.FirstName,
		client.LastName,
		client.Phone,
		client.Email,
		client.Address,
		client.UpdatedAt,
		client.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("client", nil)
	}
	return nil
}

func (r *clientRepository) SoftDelete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE clients SET active = FALSE, updated_at = $1 WHERE id = $2`,
		time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("client", nil)
	}
	return nil
}

func (r *clientRepository) List(ctx context.Context, activeOnly bool) ([]*model.Client, error) {
	query := `SELECT` + clientColumns + `FROM clients`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	clients := []*model.Client{}
	if err := r.db.SelectContext(ctx, &clients, query); err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}
