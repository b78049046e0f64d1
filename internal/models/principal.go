package models

import (
	"strings"

	"github.com/google/uuid"
)

// RoleSet is a fixed set of permissions attached to a principal.
type RoleSet uint8

const (
	RoleClient RoleSet = 1 << iota
	RoleAdmin
)

// ParseAuthority maps a granted authority name to its role bit, or zero.
func ParseAuthority(authority string) RoleSet {
	switch strings.ToUpper(strings.TrimSpace(authority)) {
	case AuthorityClient:
		return RoleClient
	case AuthorityAdmin:
		return RoleAdmin
	}
	return 0
}

func (s RoleSet) Has(r RoleSet) bool {
	return r != 0 && s&r == r
}

func (s RoleSet) Authorities() []string {
	var out []string
	if s.Has(RoleClient) {
		out = append(out, AuthorityClient)
	}
	if s.Has(RoleAdmin) {
		out = append(out, AuthorityAdmin)
	}
	return out
}

// Principal is the user resolved as acting for a single request. It is read
// only for the lifetime of the request.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Name   string
	Roles  RoleSet
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Roles.Has(RoleAdmin)
}
