package env

import "strings"

// RedactSecret masks a secret value, showing only the first 4
// and last 4 characters.
func RedactSecret(value string) string {
	if len(value) <= 8 {
		return strings.Repeat("*", len(value))
	}
	return value[:4] +
		strings.Repeat("*", len(value)-8) +
		value[len(value)-4:]
}

// sensitiveKeyFragments flag extras keys whose values must not
// reach logs in clear text.
var sensitiveKeyFragments = []string{
	"password", "secret", "token", "api_key", "apikey",
	"credential", "authorization",
}

// IsSensitiveKey reports whether an extras key looks like it
// carries a secret.
func IsSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, fragment := range sensitiveKeyFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}

// RedactExtras returns a copy of a context extras map with
// secret-looking string values masked. Non-string values under
// sensitive keys are replaced entirely.
func RedactExtras(extras map[string]any) map[string]any {
	if extras == nil {
		return nil
	}

	out := make(map[string]any, len(extras))
	for k, v := range extras {
		if !IsSensitiveKey(k) {
			out[k] = v
			continue
		}
		if s, ok := v.(string); ok {
			out[k] = RedactSecret(s)
		} else {
			out[k] = "<redacted>"
		}
	}
	return out
}
