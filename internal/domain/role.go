package domain

import "strings"

// UserRole is the account role carried in identity claims.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// AllUserRoles is the default role vocabulary accepted by the verifier.
var AllUserRoles = []UserRole{UserRoleUser, UserRoleAdmin}

// IsValid checks if a role is part of the default vocabulary
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleAdmin:
		return true
	}
	return false
}

func (r UserRole) String() string {
	return string(r)
}

// HeroRole is the combat category of a hero
type HeroRole string

const (
	HeroRoleFighter  HeroRole = "Fighter"
	HeroRoleMarksman HeroRole = "Marksman"
	HeroRoleAssassin HeroRole = "Assassin"
	HeroRoleMage     HeroRole = "Mage"
	HeroRoleTank     HeroRole = "Tank"
	HeroRoleSupport  HeroRole = "Support"
)

// AllHeroRoles contains all hero categories in display order
var AllHeroRoles = []HeroRole{
	HeroRoleFighter,
	HeroRoleMarksman,
	HeroRoleAssassin,
	HeroRoleMage,
	HeroRoleTank,
	HeroRoleSupport,
}

// IsValid checks if a hero role is valid
func (r HeroRole) IsValid() bool {
	for _, role := range AllHeroRoles {
		if r == role {
			return true
		}
	}
	return false
}

func (r HeroRole) String() string {
	return string(r)
}

// ParseHeroRole matches a category case-insensitively. Unknown input is
// returned unchanged so validation can report it.
func ParseHeroRole(s string) HeroRole {
	for _, role := range AllHeroRoles {
		if strings.EqualFold(s, string(role)) {
			return role
		}
	}
	return HeroRole(strings.TrimSpace(s))
}
