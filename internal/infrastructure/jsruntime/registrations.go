package jsruntime

import (
	"fmt"

	"github.com/grafana/sobek"

	"github.com/bnema/cardver/internal/domain/entity"
)

// collectRegistrations copies window.customCards into a fresh registry.
func collectRegistrations(rt *sobek.Runtime) (*entity.CardRegistry, error) {
	registry := entity.NewCardRegistry()

	val := rt.GlobalObject().Get(customCardsName)
	if isNullish(val) {
		return registry, nil
	}

	var entries []map[string]any
	if err := rt.ExportTo(val, &entries); err != nil {
		return nil, fmt.Errorf("window.%s is not a list of objects: %w", customCardsName, err)
	}

	for _, e := range entries {
		registry.Register(entity.CardRegistration{
			Type:             text(e["type"]),
			Name:             text(e["name"]),
			Description:      text(e["description"]),
			Version:          text(e["version"]),
			Preview:          e["preview"] == true,
			DocumentationURL: text(e["documentationURL"]),
		})
	}
	return registry, nil
}

// definedElements returns the custom element names defined during load.
func definedElements(rt *sobek.Runtime) []string {
	val := rt.GlobalObject().Get(definedElementsName)
	if isNullish(val) {
		return nil
	}
	var names []string
	if err := rt.ExportTo(val, &names); err != nil {
		return nil
	}
	return names
}

func isNullish(v sobek.Value) bool {
	return v == nil || sobek.IsUndefined(v) || sobek.IsNull(v)
}

func text(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}
