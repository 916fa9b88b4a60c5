package auth

import "context"

// Identity es el usuario cacheado de la sesión actual.
type Identity struct {
	UserID string
	Email  string
	Name   string
}

// Session abstrae al colaborador de autenticación.
// El transport y los services consumen tokens; nunca los emiten ni renuevan.
type Session interface {
	// Token devuelve el bearer token vigente. ok=false si no hay sesión
	// (o el token ya expiró); la llamada HTTP igual sale, sin header.
	Token(ctx context.Context) (string, bool)

	// Identity devuelve el usuario cacheado, si existe.
	Identity(ctx context.Context) (Identity, bool)

	// Clear invalida token + identidad (logout client-side).
	Clear(ctx context.Context) error
}
