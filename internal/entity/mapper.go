package entity

import (
	"strings"

	"github.com/quennell/appliancelink/internal/appliance"
	"github.com/quennell/appliancelink/internal/catalog"
)

// staticAttributes are reported by the API outside the capability document.
// They get entities when present in the state and defined in the catalog.
var staticAttributes = []string{
	"connectionState",
	"networkInterface/linkQualityIndicator",
	"networkInterface/otaState",
	"networkInterface/swVersion",
}

// Build maps an appliance's capabilities to entities.
//
// Sources, in order: static attributes present in the state, catalog entries
// absent from the live capability document, then the live document itself.
// Duplicates by unique ID keep the first occurrence.
func Build(app *appliance.Appliance, logger Logger) []*Entity {
	if logger == nil {
		logger = noopLogger{}
	}

	cat := app.Catalog()
	caps := app.Capabilities()
	names := flattenPaths(caps)
	state := app.StateSnapshot()

	var entities []*Entity

	for _, path := range staticAttributes {
		_, inReported := app.ReportedValue(path)
		_, atTopLevel := state[path]
		if !inReported && !atTopLevel {
			continue
		}
		desc, ok := cat[path]
		if !ok {
			continue
		}
		entities = append(entities, mapCapability(app, path, nil, desc, true, logger)...)
	}

	for path, desc := range cat {
		if desc.Capability == nil || names[path] {
			continue
		}
		entities = append(entities, mapCapability(app, path, nil, desc, true, logger)...)
	}

	for path := range names {
		liveInfo, _ := capabilityAt(caps, path).(map[string]any)
		desc, hasDesc := cat[path]
		mapped := mapCapability(app, path, liveInfo, desc, hasDesc, logger)
		if len(mapped) == 0 {
			logger.Debug("no entity for capability", "appliance_id", app.ID, "path", path)
			continue
		}
		entities = append(entities, mapped...)
	}

	seen := make(map[string]bool, len(entities))
	unique := entities[:0]
	for _, e := range entities {
		id := e.UniqueID()
		if seen[id] {
			logger.Debug("skipping duplicate entity",
				"appliance_id", app.ID, "unique_id", id)
			continue
		}
		seen[id] = true
		unique = append(unique, e)
	}
	return unique
}

// mapCapability produces zero or more entities for one attribute path.
//
// Decision order: the catalog's entity source override, capability synthesis
// or catalog-wins merge, kind inference from access and type, device class
// override, pinned platform, and finally multi-instance expansion for
// enumerated button values.
func mapCapability(app *appliance.Appliance, path string, liveInfo map[string]any, desc catalog.Descriptor, hasDesc bool, logger Logger) []*Entity {
	attr := path
	source := ""
	if i := strings.LastIndex(path, catalog.PathSeparator); i >= 0 {
		source = path[:i]
		attr = path[i+1:]
	}
	if hasDesc {
		if override := catalog.InfoEntitySource(desc.Capability); override != "" {
			source = override
		}
	}

	var merged map[string]any
	if liveInfo == nil {
		merged = catalog.CloneInfo(desc.Capability)
	} else {
		merged = catalog.CloneInfo(liveInfo)
		for key, value := range desc.Capability {
			merged[key] = value
		}
	}
	if merged == nil {
		return nil
	}

	kind := inferKind(merged)
	if hasDesc {
		if platform := desc.DeviceClass.Platform(); platform != "" {
			kind = platform
		}
		if desc.Platform != "" {
			kind = desc.Platform
		}
	}
	if kind == "" {
		return nil
	}

	name := desc.FriendlyName
	if name == "" {
		name = displayName(path)
	}

	template := Entity{
		Attr:           attr,
		Source:         source,
		Kind:           kind,
		Name:           name,
		Unit:           desc.Unit,
		DeviceClass:    desc.DeviceClass,
		Category:       desc.Category,
		Icon:           desc.Icon,
		Capability:     merged,
		EnabledDefault: !desc.DisabledByDefault,
		app:            app,
		logger:         logger,
	}

	if kind != catalog.PlatformButton {
		e := template
		return []*Entity{&e}
	}

	values := catalog.InfoValues(merged)
	if len(values) == 0 {
		e := template
		return []*Entity{&e}
	}
	entities := make([]*Entity, 0, len(values))
	for value := range values {
		e := template
		e.ValueToSend = value
		if desc.ValueNamed {
			e.Name = value
		}
		if icon, ok := desc.IconsByValue[value]; ok {
			e.Icon = icon
		}
		entities = append(entities, &e)
	}
	return entities
}

// inferKind derives the entity platform from access mode and value type.
func inferKind(info map[string]any) catalog.Platform {
	access := catalog.InfoAccess(info)
	valueType := catalog.InfoType(info)

	switch access {
	case catalog.AccessReadWrite:
		switch valueType {
		case catalog.TypeNumber, catalog.TypeInt, catalog.TypeTemperature:
			return catalog.PlatformNumber
		case catalog.TypeBoolean:
			return catalog.PlatformSwitch
		}
	case catalog.AccessWrite:
		switch valueType {
		case catalog.TypeNumber, catalog.TypeInt, catalog.TypeTemperature:
			return catalog.PlatformNumber
		}
		if len(catalog.InfoValues(info)) > 0 {
			return catalog.PlatformButton
		}
	case catalog.AccessRead, catalog.AccessConstant:
		return catalog.PlatformSensor
	}
	return ""
}

// flattenPaths lists the attribute paths in a live capability document. A
// leaf is a map carrying an access key; nesting is at most one aggregate
// deep (e.g. userSelections/analogTemperature).
func flattenPaths(caps map[string]any) map[string]bool {
	names := make(map[string]bool, len(caps))
	for key, value := range caps {
		node, ok := value.(map[string]any)
		if !ok {
			continue
		}
		if _, leaf := node[catalog.KeyAccess]; leaf {
			names[key] = true
			continue
		}
		for childKey, childValue := range node {
			child, ok := childValue.(map[string]any)
			if !ok {
				continue
			}
			if _, leaf := child[catalog.KeyAccess]; leaf {
				names[key+catalog.PathSeparator+childKey] = true
			}
		}
	}
	return names
}

// capabilityAt resolves a flattened path back into the document.
func capabilityAt(caps map[string]any, path string) any {
	var current any = caps
	for _, segment := range strings.Split(path, catalog.PathSeparator) {
		node, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = node[segment]
	}
	return current
}
