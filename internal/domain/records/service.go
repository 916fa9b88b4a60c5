package records

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"pet-community-client/internal/platform/httpclient"
	"pet-community-client/internal/platform/logger"
)

// Descriptor parametriza el service genérico para un tipo de registro:
// endpoints, tabla de normalización y conversiones form↔wire.
// Seis instancias (una por entidad) en lugar de seis copias del CRUD.
type Descriptor[E any, F any] struct {
	// Name singular, para logs y mensajes de error ("vaccination").
	Name string
	Kind Kind

	// Collection arma el path de list/create, siempre anidado bajo el pet.
	Collection func(petID string) string
	// Item arma el path de update/delete. Algunas entidades usan la forma
	// plana /medical-records/{id} porque el backend cambió entre revisiones.
	Item func(petID, recordID string) string

	Rules []Rule

	// Build construye la entidad tipada desde los campos ya normalizados.
	Build func(fields map[string]string) E

	// Payload arma el body de creación/edición. Solo campos que el backend
	// espera: nada client-only se filtra al wire.
	Payload func(form F) map[string]any

	// FormFields expone el form como campos canónicos, para sintetizar lo
	// que la respuesta del backend omita.
	FormFields func(form F) map[string]string
}

// Service es el CRUD remoto de un tipo de registro, scoped a un pet.
type Service[E any, F any] struct {
	desc      Descriptor[E, F]
	transport *httpclient.Client
	log       logger.Logger
}

func NewService[E any, F any](desc Descriptor[E, F], transport *httpclient.Client, log logger.Logger) *Service[E, F] {
	if log == nil {
		log = logger.Nop()
	}
	return &Service[E, F]{
		desc:      desc,
		transport: transport,
		log:       log.With(map[string]any{"entity": desc.Name}),
	}
}

// List trae todos los registros de este tipo para el pet.
// Política de lectura: disponibilidad antes que visibilidad de errores.
// Red caída, backend en error o body no-lista (incluso null) => lista vacía.
func (s *Service[E, F]) List(ctx context.Context, petID string) ([]E, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, ErrInvalidInput
	}

	res, err := s.transport.Get(ctx, s.desc.Collection(petID))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.desc.Name, err)
	}
	if !res.OK() {
		s.log.Warn("list failed, returning empty", map[string]any{
			"status": res.Status,
			"err":    res.Err,
		})
		return []E{}, nil
	}

	var raw []map[string]any
	if len(res.Data) > 0 {
		if err := json.Unmarshal(res.Data, &raw); err != nil {
			s.log.Warn("list body is not an array, returning empty", map[string]any{
				"status": res.Status,
			})
			return []E{}, nil
		}
	}

	out := make([]E, 0, len(raw))
	for _, item := range raw {
		out = append(out, s.desc.Build(Normalize(item, s.desc.Rules)))
	}
	return out, nil
}

// Add crea un registro y devuelve la entidad normalizada. Si el backend
// responde incompleto (pasa entre iteraciones), se completa desde el form:
// todo Add exitoso devuelve los campos de display poblados.
func (s *Service[E, F]) Add(ctx context.Context, petID string, form F) (E, error) {
	var zero E

	petID = strings.TrimSpace(petID)
	if petID == "" {
		return zero, ErrInvalidInput
	}

	res, err := s.transport.Post(ctx, s.desc.Collection(petID), s.desc.Payload(form))
	if err != nil {
		return zero, fmt.Errorf("add %s: %w", s.desc.Name, err)
	}
	if !res.OK() {
		return zero, s.opError("add", res)
	}

	return s.decode(res.Data, form, ""), nil
}

// Update edita un registro puntual, mismo contrato de normalización que Add.
func (s *Service[E, F]) Update(ctx context.Context, petID, recordID string, form F) (E, error) {
	var zero E

	petID = strings.TrimSpace(petID)
	recordID = strings.TrimSpace(recordID)
	if petID == "" || recordID == "" {
		return zero, ErrInvalidInput
	}

	res, err := s.transport.Put(ctx, s.desc.Item(petID, recordID), s.desc.Payload(form))
	if err != nil {
		return zero, fmt.Errorf("update %s: %w", s.desc.Name, err)
	}
	if !res.OK() {
		return zero, s.opError("update", res)
	}

	return s.decode(res.Data, form, recordID), nil
}

// Delete es best-effort por contrato: true solo con confirmación del backend,
// false en cualquier falla. Nunca error, para que la UI no necesite try/catch.
func (s *Service[E, F]) Delete(ctx context.Context, petID, recordID string) bool {
	petID = strings.TrimSpace(petID)
	recordID = strings.TrimSpace(recordID)
	if petID == "" || recordID == "" {
		return false
	}

	res, err := s.transport.Delete(ctx, s.desc.Item(petID, recordID))
	if err != nil {
		s.log.Warn("delete failed", map[string]any{"err": err.Error()})
		return false
	}
	if !res.OK() {
		s.log.Warn("delete failed", map[string]any{"status": res.Status, "err": res.Err})
		return false
	}
	return true
}

// decode normaliza la respuesta y rellena los huecos desde el form.
// fallbackID repara respuestas de update sin id: el caller ya lo conoce.
func (s *Service[E, F]) decode(data json.RawMessage, form F, fallbackID string) E {
	raw := map[string]any{}
	if len(data) > 0 {
		_ = json.Unmarshal(data, &raw)
	}

	fields := normalizeBare(raw, s.desc.Rules)
	for k, v := range s.desc.FormFields(form) {
		v = strings.TrimSpace(v)
		if v != "" && fields[k] == "" {
			fields[k] = v
		}
	}
	if fields["id"] == "" && fallbackID != "" {
		fields["id"] = fallbackID
	}
	applyDefaults(fields, s.desc.Rules)
	return s.desc.Build(fields)
}

func (s *Service[E, F]) opError(op string, res httpclient.Result) *OpError {
	msg := strings.TrimSpace(res.Err)
	if res.Status == 0 {
		msg = "could not reach the server, try again later"
	}
	if msg == "" {
		msg = fmt.Sprintf("the server rejected the request (status %d)", res.Status)
	}
	return &OpError{
		Entity:  s.desc.Name,
		Op:      op,
		Status:  res.Status,
		Message: msg,
	}
}
