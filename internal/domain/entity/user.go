package entity

// Roles que viajan en el token de sesión.
const (
	RoleOwner    = "owner"    // dueño de la empresa
	RoleEmployee = "employee" // empleado que atiende citas
	RoleCustomer = "customer" // cliente que reserva
	RoleAdmin    = "admin"    // administrador de la plataforma, no pertenece a una empresa concreta
)
