package records

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// OpError es el error de dominio que ven los callers en mutaciones.
// Nunca se filtra un error crudo del transport: Message es apto para UI.
type OpError struct {
	Entity  string
	Op      string
	Status  int // 0 = fallo de red
	Message string
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s %s failed: %s", e.Op, e.Entity, e.Message)
}
