package auth

import (
	"context"

	"github.com/cotelbo/cotel-admin-api/internal/domain/authz"
)

// Snapshot conjunto de permisos efectivos de un usuario, cacheable.
// Se recalcula cuando cambia el rol del usuario o los permisos del rol.
type Snapshot struct {
	Superuser bool         `json:"superuser"`
	Role      string       `json:"role"`
	Pairs     []authz.Pair `json:"pairs"`
}

// Principal construye el principal del evaluador a partir del snapshot.
func (s *Snapshot) Principal() authz.Principal {
	return authz.Principal{
		Superuser:   s.Superuser,
		Role:        s.Role,
		Permissions: authz.NewSet(s.Pairs...),
	}
}

// SnapshotCache puerto del cache de snapshots (Redis en producción).
// Get devuelve (nil, nil) en miss; los fallos de infraestructura se reportan
// como error y el resolver recae en la base de datos.
type SnapshotCache interface {
	Get(ctx context.Context, userID string) (*Snapshot, error)
	Set(ctx context.Context, userID string, s *Snapshot) error
	Invalidate(ctx context.Context, userIDs ...string) error
}
