package model

import "time"

type StaffRole string

const (
	StaffRoleVeterinarian StaffRole = "veterinarian"
	StaffRoleReceptionist StaffRole = "receptionist"
	StaffRoleGroomer      StaffRole = "groomer"
	StaffRoleAssistant    StaffRole = "assistant"
)

func (r StaffRole) Valid() bool {
	switch r {
	case StaffRoleVeterinarian, StaffRoleReceptionist, StaffRoleGroomer, StaffRoleAssistant:
		return true
	}
	return false
}

// Staff is a clinic employee record in the staff directory.
type Staff struct {
	ID        int64     `db:"id" json:"id"`
	DNI       string    `db:"dni" json:"dni"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Role      StaffRole `db:"role" json:"role"`
	Specialty string    `db:"specialty" json:"specialty,omitempty"`
	Phone     string    `db:"phone" json:"phone"`
	Email     string    `db:"email" json:"email"`
	Address   string    `db:"address" json:"address"`
	HireDate  string    `db:"hire_date" json:"hire_date"`
	Salary    float64   `db:"salary" json:"salary"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	Schedules []*Schedule `db:"-" json:"schedules,omitempty"`
}

// Schedule is a weekly working block for a staff member.
type Schedule struct {
	ID        int64     `db:"id" json:"id"`
	StaffID   int64     `db:"staff_id" json:"staff_id"`
	Weekday   string    `db:"weekday" json:"weekday"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateStaffRequest struct {
	DNI       string  `json:"dni" binding:"required,len=8,numeric"`
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name" binding:"required"`
	Role      string  `json:"role" binding:"required"`
	Specialty string  `json:"specialty"`
	Phone     string  `json:"phone"`
	Email     string  `json:"email" binding:"omitempty,email"`
	Address   string  `json:"address"`
	HireDate  string  `json:"hire_date"`
	Salary    float64 `json:"salary" binding:"omitempty,min=0"`
}

type UpdateStaffRequest struct {
	FirstName *string  `json:"first_name"`
	LastName  *string  `json:"last_name"`
	Role      *string  `json:"role"`
	Specialty *string  `json:"specialty"`
	Phone     *string  `json:"phone"`
	Email     *string  `json:"email" binding:"omitempty,email"`
	Address   *string  `json:"address"`
	Salary    *float64 `json:"salary" binding:"omitempty,min=0"`
}

type AddScheduleRequest struct {
	Weekday   string `json:"weekday" binding:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}
