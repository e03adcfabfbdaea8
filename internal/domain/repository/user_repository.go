package repository

import (
	"context"

	"github.com/jhoicas/Inventario-epi/internal/domain/entity"
)

// UserRepository puerto de lectura de usuarios para autenticación.
// La gestión de usuarios vive fuera de este servicio.
type UserRepository interface {
	// FindByEmail devuelve nil, nil si no existe.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
