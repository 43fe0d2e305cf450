package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/openvet/clinic-api/internal/model"
	"github.com/openvet/clinic-api/pkg/errors"
)

const staffColumns = `
	id, dni, first_name, last_name, role, specialty, phone, email, address,
	hire_date, salary, active, created_at, updated_at
	`

func (r *staffRepository) Create(ctx context.Context, staff *model.Staff) error {
	staff.Active = true
	staff.CreatedAt = time.Now()
	staff.UpdatedAt = staff.CreatedAt

	query := `
		INSERT INTO staff (dni, first_name, last_name, role, specialty, phone, email, address, hire_date, salary, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		staff.DNI,
		staff.FirstName,
		staff.LastName,
		staff.Role,
		staff.Specialty,
		staff.Phone,
		staff.Email,
		staff.Address,
		staff.HireDate,
		staff.Salary,
		staff.Active,
		staff.CreatedAt,
		staff.UpdatedAt,
	).Scan(&staff.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Conflict(fmt.Sprintf("a staff member with DNI %s already exists", staff.DNI), err)
		}
		return fmt.Errorf("failed to create staff member: %w", err)
	}
	return nil
}

func (r *staffRepository) Get(ctx context.Context, id int64) (*model.Staff, error) {
	var staff model.Staff
	query := `SELECT` + staffColumns + `FROM staff WHERE id = $1`
	if err := r.db.GetContext(ctx, &staff, query, id); err != nil {
		return nil, notFoundOr(err, "staff member")
	}
	return &staff, nil
}

func (r *staffRepository) GetByDNI(ctx context.Context, dni string) (*model.Staff, error) {
	var staff model.Staff
	query := `SELECT` + staffColumns + `FROM staff WHERE dni = $1`
	if err := r.db.GetContext(ctx, &staff, query, dni); err != nil {
		return nil, notFoundOr(err, "staff member")
	}
	return &staff, nil
}

func (r *staffRepository) Update(ctx context.Context, staff *model.Staff) error {
	staff.UpdatedAt = time.Now()

	query := `
		UPDATE staff
		SET first_name = $1, last_name = $2, role = $3, specialty = $4,
			phone = $5, email = $6, address = $7, salary = $8, updated_at = $9
		WHERE id = $10
	`
	result, err := r.db.ExecContext(ctx, query,
		staff.FirstName,
		staff.LastName,
		staff.Role,
		staff.Specialty,
		staff.Phone,
		staff.Email,
		staff.Address,
		staff.Salary,
		staff.UpdatedAt,
		staff.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update staff member: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("staff member", nil)
	}
	return nil
}

func (r *staffRepository) SoftDelete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE staff SET active = FALSE, updated_at = $1 WHERE id = $2`,
		time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete staff member: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("staff member", nil)
	}
	return nil
}

func (r *staffRepository) List(ctx context.Context, role string) ([]*model.Staff, error) {
	query := `SELECT` + staffColumns + `FROM staff WHERE active = TRUE`
	var args []interface{}

	if role != "" {
		query += ` AND role = $1`
		args = append(args, role)
	}
	query += ` ORDER BY last_name, first_name`

	staff := []*model.Staff{}
	if err := r.db.SelectContext(ctx, &staff, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staff, nil
}

func (r *staffRepository) AddSchedule(ctx context.Context, schedule *model.Schedule) error {
	schedule.Active = true
	schedule.CreatedAt = time.Now()

	query := `
		INSERT INTO staff_schedules (staff_id, weekday, start_time, end_time, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		schedule.StaffID,
		schedule.Weekday,
		schedule.StartTime,
		schedule.EndTime,
		schedule.Active,
		schedule.CreatedAt,
	).Scan(&schedule.ID)
	if err != nil {
		return fmt.Errorf("failed to add schedule: %w", err)
	}
	return nil
}

func (r *staffRepository) ListSchedules(ctx context.Context, staffID int64) ([]*model.Schedule, error) {
	query := `
		SELECT id, staff_id, weekday, start_time, end_time, active, created_at
		FROM staff_schedules
		WHERE staff_id = $1 AND active = TRUE
		ORDER BY CASE weekday
			WHEN 'monday' THEN 1 WHEN 'tuesday' THEN 2 WHEN 'wednesday' THEN 3
			WHEN 'thursday' THEN 4 WHEN 'friday' THEN 5 WHEN 'saturday' THEN 6
			ELSE 7 END, start_time
	`
	schedules := []*model.Schedule{}
	if err := r.db.SelectContext(ctx, &schedules, query, staffID); err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

func (r *staffRepository) RemoveSchedule(ctx context.Context, scheduleID int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE staff_schedules SET active = FALSE WHERE id = $1`,
		scheduleID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove schedule: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("schedule", nil)
	}
	return nil
}
