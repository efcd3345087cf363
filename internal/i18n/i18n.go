package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
)

//go:embed locales/*.json
var embedded embed.FS

// Bundle holds UI label dictionaries keyed by layer key.
type Bundle struct {
	dict     map[string]map[string]string
	fallback string
}

// Load reads one <key>.json dictionary per layer key from dir in fsys.
// Only the fallback dictionary is required.
func Load(fsys fs.FS, dir string, fallback string, keys []string) (*Bundle, error) {
	b := &Bundle{
		dict:     map[string]map[string]string{},
		fallback: fallback,
	}
	if len(keys) == 0 {
		keys = []string{fallback}
	}
	for _, k := range keys {
		raw, err := fs.ReadFile(fsys, path.Join(dir, k+".json"))
		if err != nil {
			// allow missing file for non-default layers
			if k == fallback {
				return nil, fmt.Errorf("load labels %s: %w", k, err)
			}
			continue
		}
		var m map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", k, err)
		}
		b.dict[k] = m
	}
	if _, ok := b.dict[fallback]; !ok {
		return nil, fmt.Errorf("fallback labels %s not loaded", fallback)
	}
	return b, nil
}

// Default loads the labels shipped with the binary. Page chrome is written
// in the default language for every locale, so only that dictionary ships.
func Default() (*Bundle, error) {
	return Load(embedded, "locales", DefaultLayerKey, []string{DefaultLayerKey})
}

// MustDefault is Default for package initialisation and tests.
func MustDefault() *Bundle {
	b, err := Default()
	if err != nil {
		panic(err)
	}
	return b
}

// Keys returns the layer keys with a loaded dictionary.
func (b *Bundle) Keys() []string {
	out := make([]string, 0, len(b.dict))
	for k := range b.dict {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Fallback returns the layer key consulted last.
func (b *Bundle) Fallback() string { return b.fallback }

// Lookup finds key along the locale's fallback chain, then the bundle fallback.
func (b *Bundle) Lookup(locale, key string) (string, bool) {
	for _, layer := range FallbackChain(locale) {
		if v, ok := b.dict[layer][key]; ok {
			return v, true
		}
	}
	if v, ok := b.dict[b.fallback][key]; ok {
		return v, true
	}
	return "", false
}

// T returns the label for key in locale, or the key itself when unknown.
func (b *Bundle) T(locale, key string) string {
	if v, ok := b.Lookup(locale, key); ok {
		return v
	}
	return key
}

// For binds the bundle to a locale.
func (b *Bundle) For(locale string) Labels {
	return Labels{bundle: b, locale: locale}
}

// Labels is a Bundle bound to one locale.
type Labels struct {
	bundle *Bundle
	locale string
}

// Locale returns the bound locale.
func (l Labels) Locale() string { return l.locale }

func (l Labels) T(key string) string {
	if l.bundle == nil {
		return key
	}
	return l.bundle.T(l.locale, key)
}

func (l Labels) Lookup(key string) (string, bool) {
	if l.bundle == nil {
		return "", false
	}
	return l.bundle.Lookup(l.locale, key)
}

// Sprintf formats args with the label under key as the format.
func (l Labels) Sprintf(key string, args ...any) string {
	return fmt.Sprintf(l.T(key), args...)
}

// Vocabulary maps value through the labels under prefix+value, passing
// unknown values through unchanged.
func (l Labels) Vocabulary(prefix, value string) string {
	if v, ok := l.Lookup(prefix + value); ok {
		return v
	}
	return value
}
