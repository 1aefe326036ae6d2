package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/maksimkurb/cgproxy/src/internal/errors"
	"github.com/maksimkurb/cgproxy/src/internal/log"
	"github.com/maksimkurb/cgproxy/src/internal/utils"
)

// FieldOutcome is what happened to one key during a load.
type FieldOutcome int

const (
	// Absent means the key was not in the document; the field kept its value.
	Absent FieldOutcome = iota
	// Applied means the field now holds the value from the document.
	Applied
	// TypeMismatch means the value passed validation but does not fit the
	// field's type (a bare string for a cgroup list); the field kept its value.
	TypeMismatch
)

func (o FieldOutcome) String() string {
	switch o {
	case Absent:
		return "absent"
	case Applied:
		return "applied"
	case TypeMismatch:
		return "type_mismatch"
	default:
		return fmt.Sprintf("FieldOutcome(%d)", int(o))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o FieldOutcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *FieldOutcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "absent":
		*o = Absent
	case "applied":
		*o = Applied
	case "type_mismatch":
		*o = TypeMismatch
	default:
		return fmt.Errorf("unknown field outcome %q", text)
	}
	return nil
}

// FieldResult is the outcome of a single key.
type FieldResult struct {
	Field   string       `json:"field"`
	Outcome FieldOutcome `json:"outcome"`
	Reason  string       `json:"reason,omitempty"`
}

// LoadReport lists the outcome of every key in Fields order.
type LoadReport struct {
	Results []FieldResult `json:"results"`
}

// Outcome returns the outcome recorded for name.
func (r *LoadReport) Outcome(name string) FieldOutcome {
	for _, res := range r.Results {
		if res.Field == name {
			return res.Outcome
		}
	}
	return Absent
}

// Applied returns the names of the fields that were changed.
func (r *LoadReport) Applied() []string {
	var names []string
	for _, res := range r.Results {
		if res.Outcome == Applied {
			names = append(names, res.Field)
		}
	}
	return names
}

// Skipped returns the fields that were present but could not be applied.
func (r *LoadReport) Skipped() []FieldResult {
	var skipped []FieldResult
	for _, res := range r.Results {
		if res.Outcome == TypeMismatch {
			skipped = append(skipped, res)
		}
	}
	return skipped
}

// LoadFromFile reads path and applies it with LoadFromJSON. If the file cannot
// be read, a FILE_ERROR is returned and c is not modified.
func (c *Config) LoadFromFile(path string) (*LoadReport, error) {
	log.Debugf("loading config: %s", path)

	f, err := os.Open(path)
	if err != nil {
		log.Errorf("open failed: %s", path)
		return nil, errors.NewFileError(fmt.Sprintf("failed to open config file %s", path), err)
	}
	defer utils.CloseOrWarn(f)

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.NewFileError(fmt.Sprintf("failed to read config file %s", path), err)
	}

	return c.LoadFromJSON(content)
}

// LoadFromJSON validates data and applies every key it contains. A document
// rejected by ValidateJSON yields a PARAM_ERROR and leaves c untouched.
func (c *Config) LoadFromJSON(data []byte) (*LoadReport, error) {
	if err := ValidateJSON(data); err != nil {
		log.Errorf("json validate fail")
		return nil, errors.NewParamError("json validate fail", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		// ValidateJSON already parsed it
		return nil, errors.NewInternalError("failed to parse validated config", err)
	}

	report := &LoadReport{Results: make([]FieldResult, 0, len(Fields))}
	for _, field := range Fields {
		result := FieldResult{Field: field.Name, Outcome: Absent}

		if raw, present := doc[field.Name]; present {
			if err := field.apply(c, raw); err != nil {
				result.Outcome = TypeMismatch
				result.Reason = err.Error()
				log.Warnf("Field %s was not applied: %v", field.Name, err)
			} else {
				result.Outcome = Applied
			}
		}

		report.Results = append(report.Results, result)
	}

	return report, nil
}

// ToJSON serializes the nine keys in Fields order.
func (c *Config) ToJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(field.value(c))
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s: %w", field.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SerializeConfig returns ToJSON indented with four spaces and a trailing newline.
func (c *Config) SerializeConfig() (*bytes.Buffer, error) {
	data, err := c.ToJSON()
	if err != nil {
		return nil, err
	}

	buf := bytes.Buffer{}
	if err := json.Indent(&buf, data, "", "    "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return &buf, nil
}

// SaveToFile writes SerializeConfig to path. Failure to write yields a FILE_ERROR.
func (c *Config) SaveToFile(path string) error {
	content, err := c.SerializeConfig()
	if err != nil {
		return errors.NewInternalError("failed to serialize config", err)
	}
	if err := os.WriteFile(path, content.Bytes(), 0644); err != nil {
		log.Errorf("open failed: %s", path)
		return errors.NewFileError(fmt.Sprintf("failed to write config file %s", path), err)
	}
	log.Debugf("config saved: %s", path)
	return nil
}
