package domain

import "errors"

var (
	ErrNotFound = errors.New("documento no encontrado")
	// ErrFolioDuplicado lo devuelven los repositorios cuando el índice único de folio rechaza el alta.
	ErrFolioDuplicado = errors.New("folio duplicado")
)
