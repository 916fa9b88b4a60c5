// Package kv define el store key→JSON-string que usa la persistencia local.
// Dos keys en uso hoy: la colección completa de mascotas y la de registros
// de salud. Cada mutación reescribe la colección entera (ver service).
package kv

import "context"

type Store interface {
	// Get devuelve el valor y ok=false si la key no existe.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
