package entity

// Roles del taller (claim "role" del JWT).
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleTecnico   = "tecnico"
	RoleCajero    = "cajero"
)

// IsValidRole indica si role es uno de los roles del taller.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleBodeguero, RoleTecnico, RoleCajero:
		return true
	}
	return false
}
