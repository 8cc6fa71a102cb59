package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrInvariant        = errors.New("invariante de entidad violada")
	ErrFetch            = errors.New("descarga de feed fallida")
	ErrFeedFormat       = errors.New("formato de feed inválido")
	ErrPersistence      = errors.New("error de persistencia")
	ErrImportInProgress = errors.New("ya hay una importación en curso")
)
