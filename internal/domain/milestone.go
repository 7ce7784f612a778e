package domain

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Milestone types understood by the processor. MilestoneHome is an alias of
// MilestoneHousing.
const (
	MilestoneEducation = "education"
	MilestoneJob       = "job"
	MilestoneMarriage  = "marriage"
	MilestoneHousing   = "housing"
	MilestoneHome      = "home"
	MilestoneCar       = "car"
	MilestoneChildren  = "children"
	MilestoneMilitary  = "military"
)

// Milestone is a life event. Besides the type discriminator and the year it
// carries free-form, type-specific parameters. Records are flat on the wire:
//
//	{"type": "housing", "year": 5, "value": 300000, "down_payment": 60000}
type Milestone struct {
	Type   string
	Year   int
	Params map[string]any
}

// Kind returns the canonical, lower-cased milestone type.
func (m Milestone) Kind() string {
	k := strings.ToLower(strings.TrimSpace(m.Type))
	if k == MilestoneHome {
		return MilestoneHousing
	}
	return k
}

// Param looks a parameter up ignoring case and underscores.
func (m Milestone) Param(key string) (any, bool) {
	want := normalizeKey(key)
	for k, v := range m.Params {
		if normalizeKey(k) == want {
			return v, true
		}
	}
	return nil, false
}

// DecodeParams decodes the parameters into out. Struct tags of out must use the
// normalized form of the key (lower case, no underscores).
func (m Milestone) DecodeParams(out any) error {
	normalized := make(map[string]any, len(m.Params))
	for k, v := range m.Params {
		normalized[normalizeKey(k)] = v
	}
	b, err := json.Marshal(normalized)
	if err != nil {
		return fmt.Errorf("encode %s milestone parameters: %w", m.Kind(), err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode %s milestone parameters: %w", m.Kind(), err)
	}
	return nil
}

// MarshalJSON flattens the parameters next to type and year.
func (m Milestone) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.flatten())
}

// UnmarshalJSON reads a flat milestone record.
func (m *Milestone) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	return m.fromMap(raw)
}

// MarshalYAML flattens the parameters next to type and year.
func (m Milestone) MarshalYAML() (any, error) {
	return m.flatten(), nil
}

// UnmarshalYAML reads a flat milestone record.
func (m *Milestone) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]any
	if err := value.Decode(&raw); err != nil {
		return err
	}
	return m.fromMap(raw)
}

func (m Milestone) flatten() map[string]any {
	out := make(map[string]any, len(m.Params)+2)
	for k, v := range m.Params {
		out[k] = v
	}
	out["type"] = m.Type
	out["year"] = m.Year
	return out
}

func (m *Milestone) fromMap(raw map[string]any) error {
	m.Params = make(map[string]any, len(raw))
	m.Type = ""
	m.Year = 0
	for k, v := range raw {
		switch normalizeKey(k) {
		case "type":
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("milestone type must be a string, got %T", v)
			}
			m.Type = s
		case "year":
			y, err := toInt(v)
			if err != nil {
				return fmt.Errorf("milestone year: %w", err)
			}
			m.Year = y
		default:
			m.Params[k] = stringKeys(v)
		}
	}
	return nil
}

// stringKeys converts YAML mappings with non-string keys (e.g. year schedules)
// into JSON-friendly maps.
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = stringKeys(val)
		}
		return out
	case map[string]any:
		for k, val := range t {
			t[k] = stringKeys(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = stringKeys(val)
		}
		return t
	default:
		return v
	}
}

func normalizeKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	k = strings.ReplaceAll(k, "_", "")
	return strings.ReplaceAll(k, "-", "")
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			f, ferr := n.Float64()
			if ferr != nil {
				return 0, err
			}
			return int(f), nil
		}
		return int(i), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(n))
	default:
		return 0, fmt.Errorf("unsupported year value %T", v)
	}
}
