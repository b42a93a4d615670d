package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrValidation        = errors.New("entrada inválida")
	ErrItemNotFound      = errors.New("artículo sin posición en inventario")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrStillShipped      = errors.New("la entrada tiene salidas que dependen de su stock")
	ErrInvalidReversal   = errors.New("la reversión dejaría la posición en estado inválido")
)
