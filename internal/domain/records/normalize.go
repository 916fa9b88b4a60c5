package records

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Rule mapea un campo canónico a sus variantes de nombre en el backend,
// en orden de precedencia, con un default final. Tabla declarativa a
// propósito: cada revisión nueva del backend suma una variante, no un if.
type Rule struct {
	Target  string
	Sources []string
	Default string
}

// Normalize proyecta un objeto crudo del backend al shape canónico.
// Valores vacíos o null cuentan como ausentes y siguen al siguiente candidato.
func Normalize(raw map[string]any, rules []Rule) map[string]string {
	out := normalizeBare(raw, rules)
	applyDefaults(out, rules)
	return out
}

// normalizeBare es Normalize sin defaults: "" marca campo ausente.
// Lo usa decode, que antes de rellenar defaults intenta con el form.
func normalizeBare(raw map[string]any, rules []Rule) map[string]string {
	out := make(map[string]string, len(rules))
	for _, r := range rules {
		val := ""
		for _, src := range r.Sources {
			v, ok := raw[src]
			if !ok {
				continue
			}
			if s := stringify(v); s != "" {
				val = s
				break
			}
		}
		out[r.Target] = val
	}
	return out
}

func applyDefaults(fields map[string]string, rules []Rule) {
	for _, r := range rules {
		if fields[r.Target] == "" {
			fields[r.Target] = r.Default
		}
	}
}

// stringify lleva cualquier valor JSON a string de display.
// Los IDs numéricos ({"id": 42}) terminan como "42", sin notación científica.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
