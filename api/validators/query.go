package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/angelmondragon/urbanx-storefront/pkg/errors"
)

const (
	maxQueryValueLen = 64
	maxQueryValues   = 16
)

// ParseQueryList collects every value for key. Values may be repeated
// (?size=S&size=M) or comma separated (?size=S,M). Blank entries are skipped
// and duplicates collapse to their first occurrence.
func ParseQueryList(r *http.Request, key string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, raw := range r.URL.Query()[key] {
		for _, part := range strings.Split(raw, ",") {
			value := SanitizeString(part, maxQueryValueLen)
			if value == "" {
				continue
			}
			if _, dup := seen[value]; dup {
				continue
			}
			seen[value] = struct{}{}
			out = append(out, value)
		}
	}
	return out
}

// ParseQueryEnums parses every value for key with parse. The first value
// parse rejects fails the whole list.
func ParseQueryEnums[T ~string](r *http.Request, key string, parse func(string) (T, error)) ([]T, error) {
	values := ParseQueryList(r, key)
	if len(values) > maxQueryValues {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "too many query values").WithDetails(map[string]any{"field": key, "max": maxQueryValues})
	}
	out := make([]T, 0, len(values))
	for _, v := range values {
		parsed, err := parse(v)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid query parameter").WithDetails(map[string]any{"field": key, "value": v})
		}
		out = append(out, parsed)
	}
	return out, nil
}

// ParseQueryEnum parses the single value for key. An absent key yields the
// zero value of T, which parse sees as "".
func ParseQueryEnum[T ~string](r *http.Request, key string, parse func(string) (T, error)) (T, error) {
	raw := SanitizeString(r.URL.Query().Get(key), maxQueryValueLen)
	parsed, err := parse(raw)
	if err != nil {
		var zero T
		return zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid query parameter").WithDetails(map[string]any{"field": key, "value": raw})
	}
	return parsed, nil
}

// ParseQueryInt reads an optional integer parameter bounded by [min, max].
func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}
