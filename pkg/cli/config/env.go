package config

import "strings"

// EnvMap converts "KEY=value" pairs as returned by os.Environ into a map.
// Later entries win over earlier ones.
func EnvMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = value
	}
	return env
}
