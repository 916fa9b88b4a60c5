// Package session implementa el puerto auth.Session sobre el kv store.
// La lib solo consume tokens emitidos por el backend de auth; acá se
// persisten, se cachea la identidad y se invalidan en logout (o 401).
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pet-community-client/internal/platform/logger"
	"pet-community-client/internal/platform/storage/kv"
	"pet-community-client/internal/ports/auth"
)

const (
	keyToken    = "auth/token"
	keyIdentity = "auth/identity"
)

type Store struct {
	kv  kv.Store
	log logger.Logger
	now func() time.Time
}

func New(kvs kv.Store, log logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{kv: kvs, log: log, now: time.Now}
}

// SaveToken persiste el bearer token recibido del backend de auth.
func (s *Store) SaveToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("session: empty token")
	}
	return s.kv.Set(ctx, keyToken, token)
}

// SaveIdentity cachea el usuario de la sesión.
func (s *Store) SaveIdentity(ctx context.Context, id auth.Identity) error {
	if strings.TrimSpace(id.UserID) == "" {
		return errors.New("session: identity missing user id")
	}
	b, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("session: marshal identity: %w", err)
	}
	return s.kv.Set(ctx, keyIdentity, string(b))
}

// Token devuelve el bearer token vigente.
// Un JWT vencido cuenta como "sin sesión": mandar un token muerto solo
// genera 401 y logout en cadena.
func (s *Store) Token(ctx context.Context) (string, bool) {
	v, ok, err := s.kv.Get(ctx, keyToken)
	if err != nil {
		s.log.Warn("session storage unreadable", map[string]any{"err": err.Error()})
		return "", false
	}
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	if s.expired(v) {
		return "", false
	}
	return v, true
}

func (s *Store) Identity(ctx context.Context) (auth.Identity, bool) {
	v, ok, err := s.kv.Get(ctx, keyIdentity)
	if err != nil || !ok {
		return auth.Identity{}, false
	}

	var id auth.Identity
	if err := json.Unmarshal([]byte(v), &id); err != nil {
		return auth.Identity{}, false
	}
	if strings.TrimSpace(id.UserID) == "" {
		return auth.Identity{}, false
	}
	return id, true
}

// Clear borra token + identidad (logout client-side). Intenta ambos
// borrados aunque uno falle: una sesión a medio limpiar es peor que
// reportar el error al final.
func (s *Store) Clear(ctx context.Context) error {
	return errors.Join(
		s.kv.Delete(ctx, keyToken),
		s.kv.Delete(ctx, keyIdentity),
	)
}

// expired inspecciona el claim exp sin verificar firma (la firma la valida
// el backend; acá solo evitamos usar un token que ya sabemos vencido).
// Tokens opacos (no-JWT) pasan: no hay forma de saber su vigencia local.
func (s *Store) expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(s.now())
}
