// Package labels ships the built-in Korean display labels for the closed
// payment status and pay type code sets. The backend code tables take
// precedence; these are the floor the UI falls back to when a table comes
// back empty or is missing a code.
package labels

import (
	_ "embed"
	"sync"

	"gopkg.in/yaml.v3"

	"payboard/output"
)

//go:embed labels.yaml
var rawLabels []byte

type tables struct {
	PaymentStatus  map[string]string `yaml:"payment_status"`
	PayType        map[string]string `yaml:"pay_type"`
	MerchantStatus map[string]string `yaml:"merchant_status"`
}

var (
	loadOnce sync.Once
	builtin  tables
)

func load() tables {
	loadOnce.Do(func() {
		if err := yaml.Unmarshal(rawLabels, &builtin); err != nil {
			// Embedded file, so this only happens on a bad edit. Degrade to
			// raw codes rather than failing the command.
			output.LogEvent("labels_parse_error", map[string]any{"error": err.Error()})
			builtin = tables{}
		}
	})
	return builtin
}

// PaymentStatus returns the built-in payment status labels.
func PaymentStatus() map[string]string {
	return clone(load().PaymentStatus)
}

// PayType returns the built-in payment method labels.
func PayType() map[string]string {
	return clone(load().PayType)
}

// MerchantStatus returns the built-in merchant status labels. Merchant
// status codes are tenant-defined, so the built-in table is empty and the
// fetched code table is the only real source.
func MerchantStatus() map[string]string {
	return clone(load().MerchantStatus)
}

// Merge overlays fetched code descriptions on top of the given defaults.
// Fetched entries win; blank descriptions are ignored.
func Merge(defaults map[string]string, fetched map[string]string) map[string]string {
	merged := clone(defaults)
	if merged == nil {
		merged = make(map[string]string, len(fetched))
	}
	for code, desc := range fetched {
		if desc == "" {
			continue
		}
		merged[code] = desc
	}
	return merged
}

// Resolve returns the label for code, falling back to the raw code so an
// unrecognized value still renders.
func Resolve(table map[string]string, code string) string {
	if label, ok := table[code]; ok && label != "" {
		return label
	}
	return code
}

func clone(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
