package entity

import (
	"context"
	"strings"
	"sync"
	"unicode"

	"github.com/quennell/appliancelink/internal/appliance"
	"github.com/quennell/appliancelink/internal/catalog"
)

// CommandExecutor sends command payloads to the vendor. cloud.APIClient
// satisfies this.
type CommandExecutor interface {
	ExecuteCommand(ctx context.Context, applianceID string, command map[string]any) error
}

// Entity is one host-facing view of a single appliance attribute (or, for
// button-like attributes, of a single command value).
type Entity struct {
	// Attr is the leaf attribute name; Source is the aggregate it lives
	// under in the reported state ("" for root-level attributes).
	Attr   string
	Source string

	Kind        catalog.Platform
	Name        string
	Unit        catalog.Unit
	DeviceClass catalog.DeviceClass
	Category    catalog.Category
	Icon        string

	// Capability is the merged capability info (catalog over live).
	Capability map[string]any

	// ValueToSend is the command value for multi-instance button entities.
	ValueToSend string

	// EnabledDefault reports whether the host should enable the entity on
	// first registration.
	EnabledDefault bool

	app    *appliance.Appliance
	logger Logger

	mu          sync.Mutex
	cachedValue float64
	hasCached   bool
}

// Appliance returns the appliance this entity belongs to.
func (e *Entity) Appliance() *appliance.Appliance {
	return e.app
}

// StatePath returns the attribute's full path in the reported state.
func (e *Entity) StatePath() string {
	if e.Source == "" {
		return e.Attr
	}
	return e.Source + catalog.PathSeparator + e.Attr
}

// UniqueID derives the stable identity key used for deduplication and host
// registration.
func (e *Entity) UniqueID() string {
	parts := []string{e.app.ID, string(e.Kind)}
	if e.Source != "" {
		parts = append(parts, e.Source)
	}
	parts = append(parts, e.Attr)
	if e.ValueToSend != "" {
		parts = append(parts, e.ValueToSend)
	}
	return strings.ToLower(strings.Join(parts, "_"))
}

// RawValue reads the attribute's current reported value.
func (e *Entity) RawValue() (any, bool) {
	return e.app.ReportedValue(e.StatePath())
}

// StateUpdated implements appliance.Observer. Numeric entities refresh
// their cached value so a later read with missing data falls back to the
// last known value.
func (e *Entity) StateUpdated() {
	if e.Kind != catalog.PlatformNumber {
		return
	}
	if n, err := e.AsNumber(); err == nil {
		n.Value()
	}
}

// displayName derives a human-readable name from an attribute path, splitting
// path segments and camel-case words: "userSelections/analogTemperature"
// becomes "User Selections Analog Temperature".
func displayName(path string) string {
	var words []string
	for _, segment := range strings.Split(path, catalog.PathSeparator) {
		words = append(words, splitCamel(segment)...)
	}
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func splitCamel(s string) []string {
	var words []string
	start := 0
	for i := 1; i < len(s); i++ {
		if unicode.IsUpper(rune(s[i])) && !unicode.IsUpper(rune(s[i-1])) {
			words = append(words, s[start:i])
			start = i
		}
	}
	if start < len(s) {
		words = append(words, s[start:])
	}
	return words
}
