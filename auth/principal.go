package auth

import (
	"food-ordering-api/models"
)

// Capability is a permission checked per route
type Capability string

const (
	CapOrderFood        Capability = "order_food"
	CapManageRestaurant Capability = "manage_restaurant"
	CapAdminister       Capability = "administer_platform"
)

var roleCapabilities = map[models.RoleName][]Capability{
	models.RoleCustomer: {CapOrderFood},
	models.RoleOwner:    {CapManageRestaurant},
	models.RoleAdmin:    {CapAdminister},
}

// Principal is the authenticated caller, passed explicitly down the request chain
type Principal struct {
	UserID       uint
	Email        string
	Name         string
	Roles        []models.RoleName
	capabilities map[Capability]bool
}

// NewPrincipal resolves the capability set from the user's roles
func NewPrincipal(user *models.User) *Principal {
	p := &Principal{
		UserID:       user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Roles:        user.RoleNames(),
		capabilities: map[Capability]bool{},
	}
	for _, role := range p.Roles {
		for _, c := range roleCapabilities[role] {
			p.capabilities[c] = true
		}
	}
	return p
}

func (p *Principal) Can(c Capability) bool {
	return p != nil && p.capabilities[c]
}
