package auth

import (
	"github.com/cotelbo/cotel-admin-api/internal/application/dto"
	"github.com/cotelbo/cotel-admin-api/internal/domain"
	"github.com/cotelbo/cotel-admin-api/internal/domain/authz"
	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
)

// ParseCriteria convierte criterios del API al variante cerrado del
// evaluador, validando tipo y acciones en la frontera.
func ParseCriteria(in []dto.CriterionRequest) ([]authz.Criterion, error) {
	out := make([]authz.Criterion, 0, len(in))
	for _, c := range in {
		switch c.Type {
		case "recurso":
			action := entity.Action(c.Action)
			if c.Resource == "" || !action.Valid() {
				return nil, domain.ErrInvalidInput
			}
			out = append(out, authz.Resource(c.Resource, action))
		case "rol":
			if c.Role == "" {
				return nil, domain.ErrInvalidInput
			}
			out = append(out, authz.Role(c.Role))
		case "roles":
			if len(c.Roles) == 0 {
				return nil, domain.ErrInvalidInput
			}
			out = append(out, authz.AnyRole(c.Roles...))
		case "permisos":
			pairs := make([]authz.Pair, 0, len(c.Pairs))
			for _, p := range c.Pairs {
				action := entity.Action(p.Action)
				if p.Resource == "" || !action.Valid() {
					return nil, domain.ErrInvalidInput
				}
				pairs = append(pairs, authz.Pair{Resource: p.Resource, Action: action})
			}
			if len(pairs) == 0 {
				return nil, domain.ErrInvalidInput
			}
			out = append(out, authz.Permissions(c.RequireAll, pairs...))
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	return out, nil
}
