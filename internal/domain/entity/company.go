package entity

import "time"

// Company representa una empresa/tenant que agenda citas (dueño, empleados y clientes cuelgan de ella).
type Company struct {
	ID        string
	Name      string
	Slug      string
	Email     string
	Status    string // active, suspended
	CreatedAt time.Time
	UpdatedAt time.Time
}
