package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrProductNotFound     = errors.New("producto no encontrado o inactivo")
	ErrSaleNotFound        = errors.New("venta no encontrada")
	ErrPermissionNotFound  = errors.New("permiso no existe en el catálogo")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrInvalidQuantity     = errors.New("la cantidad debe ser un entero positivo")
	ErrUsernameTaken       = errors.New("el nombre de usuario ya existe")
	ErrDuplicateBarcode    = errors.New("el código de barras ya está registrado")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrLastAdministrator   = errors.New("no se puede eliminar o degradar al único administrador")
	ErrInsufficientPayment = errors.New("el monto recibido es menor que el total")
	ErrProductInUse        = errors.New("el producto tiene ventas asociadas y no puede eliminarse")
	ErrInvalidStatus       = errors.New("la venta no está en un estado que permita la operación")
)

// StockError identifica el producto que no tiene stock suficiente.
// errors.Is(err, ErrInsufficientStock) sigue funcionando.
type StockError struct {
	ProductID int64
	Requested int
	Available int // -1 si no se conoce (ej. el UPDATE condicional no afectó filas)
}

func (e *StockError) Error() string {
	if e.Available < 0 {
		return fmt.Sprintf("stock insuficiente para producto %d (solicitado %d)", e.ProductID, e.Requested)
	}
	return fmt.Sprintf("stock insuficiente para producto %d (solicitado %d, disponible %d)", e.ProductID, e.Requested, e.Available)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }

// ValidationError indica el campo y el motivo de una validación fallida.
// errors.Is(err, ErrInvalidInput) sigue funcionando.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "entrada inválida: " + e.Reason
	}
	return fmt.Sprintf("entrada inválida: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid construye un ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
