package usecase

import "errors"

// Sentinel errors mapped to HTTP statuses by the handlers. Validation and
// authorization failures get their own values; everything else surfaces as
// a wrapped storage error and becomes a 500.
var (
	ErrEmailTaken         = errors.New("el correo ya está registrado")
	ErrInvalidCredentials = errors.New("credenciales incorrectas")
	ErrUserNotFound       = errors.New("correo no encontrado")
	ErrInvalidToken       = errors.New("token inválido")

	ErrProductNotFound = errors.New("producto no encontrado")
	ErrOrderNotFound   = errors.New("pedido no encontrado")

	ErrInvalidQuantity      = errors.New("la cantidad debe ser mayor que cero")
	ErrCartEmpty            = errors.New("carrito vacío")
	ErrEmptyAddress         = errors.New("la dirección de envío es obligatoria")
	ErrInvalidPaymentMethod = errors.New("método de pago no válido")

	ErrForbidden = errors.New("acceso denegado")
)
