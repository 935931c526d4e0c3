package pattern

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/bharat-properties/intake-cli/internal/model"
	"github.com/bharat-properties/intake-cli/pkg/rules"
)

// OverrideFromRecords converts dynamic rule records into an Override.
// Unknown record types and blank values are skipped; TYPE records without a
// category are skipped too. Returns nil when nothing usable remains, which
// resolves to the defaults.
func OverrideFromRecords(records []rules.Record) *Override {
	var o Override
	typeIndex := make(map[model.Category]int)

	for _, r := range records {
		value := strings.TrimSpace(r.Value)
		if value == "" {
			continue
		}
		switch r.Type {
		case rules.RecordTypeCity:
			o.Cities = append(o.Cities, value)
		case rules.RecordTypeLocation:
			o.Locations = append(o.Locations, value)
		case rules.RecordTypeType:
			cat := model.Category(strings.TrimSpace(r.Category))
			if cat == "" {
				continue
			}
			idx, ok := typeIndex[cat]
			if !ok {
				o.Types = append(o.Types, CategoryRule{Category: cat})
				idx = len(o.Types) - 1
				typeIndex[cat] = idx
			}
			o.Types[idx].Keywords = append(o.Types[idx].Keywords, strings.ToLower(value))
		}
	}

	if len(o.Cities) == 0 && len(o.Locations) == 0 && len(o.Types) == 0 {
		return nil
	}
	return &o
}

// LoadOverrideFile reads an Override from a YAML file.
func LoadOverrideFile(path string) (*Override, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "pattern: read override file")
	}

	var o Override
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, eris.Wrap(err, "pattern: parse override file")
	}
	return &o, nil
}
