package domain

import "time"

type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleBilling   UserRole = "billing"
	RoleWallet    UserRole = "wallet"
	RoleLogistics UserRole = "logistics"
	RoleCourier   UserRole = "courier"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleBilling, RoleWallet, RoleLogistics, RoleCourier:
		return true
	}
	return false
}

type User struct {
	ID        uint64
	Username  string
	Password  string
	Name      string
	Role      UserRole
	CreatedAt time.Time
	UpdatedAt time.Time
}
