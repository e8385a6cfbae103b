package auth

import (
	"sort"

	"delivery-management-api/models"
)

// Endpoint identifies a route by HTTP method and path pattern
type Endpoint struct {
	Method string
	Path   string
}

// Permissions maps every protected endpoint to the roles allowed to call it
type Permissions map[Endpoint][]models.Role

// Allowed reports whether role may call the endpoint. Endpoints missing from
// the table are denied.
func (p Permissions) Allowed(method, path string, role models.Role) bool {
	for _, r := range p[Endpoint{Method: method, Path: path}] {
		if r == role {
			return true
		}
	}
	return false
}

// Roles returns the roles allowed on the endpoint
func (p Permissions) Roles(method, path string) []models.Role {
	return p[Endpoint{Method: method, Path: path}]
}

// Endpoints lists the table keys in a stable order
func (p Permissions) Endpoints() []Endpoint {
	out := make([]Endpoint, 0, len(p))
	for e := range p {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}
