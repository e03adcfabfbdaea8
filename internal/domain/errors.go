package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrInvalidPeriod    = errors.New("período inválido")
	ErrUnknownDimension = errors.New("dimensión de ranking desconocida")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrCacheMiss        = errors.New("reporte no encontrado en caché")
)
