package domain

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type Identity struct {
	ID    string
	Email string
	Name  string
	Role  Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// NameFromEmail returns the local part of an email address.
func NameFromEmail(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}

// ParseRole maps a role name to a Role. An empty name is a customer.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, "":
		return RoleCustomer, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}
