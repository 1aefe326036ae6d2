package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/maksimkurb/cgproxy/src/internal/log"
)

// ValidateJSON checks an untrusted configuration document. The document must be
// a JSON object whose keys all belong to Fields and whose values have the
// expected types. Keys are checked in document order and the first failure
// rejects the whole document.
func ValidateJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return documentError(fmt.Sprintf("invalid JSON: %v", err))
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return documentError("configuration must be a JSON object")
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return documentError(fmt.Sprintf("invalid JSON: %v", err))
		}
		key, ok := tok.(string)
		if !ok {
			return documentError("invalid JSON: expected object key")
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return documentError(fmt.Sprintf("invalid JSON: %v", err))
		}

		field, known := FieldByName(key)
		if !known {
			log.Errorf("unknown key: %s", key)
			return ValidationErrors{{FieldPath: key, Message: "unknown key"}}
		}
		if path, message, ok := field.check(raw); !ok {
			log.Errorf("invalid value for key: %s", key)
			return ValidationErrors{{FieldPath: path, Message: message}}
		}
	}

	// closing brace, then nothing but whitespace
	if _, err := dec.Token(); err != nil {
		return documentError(fmt.Sprintf("invalid JSON: %v", err))
	}
	if _, err := dec.Token(); err != io.EOF {
		return documentError("invalid JSON: trailing data after object")
	}

	return nil
}

// IsValidJSON reports whether ValidateJSON accepts data.
func IsValidJSON(data []byte) bool {
	return ValidateJSON(data) == nil
}

func documentError(message string) ValidationErrors {
	log.Errorf("%s", message)
	return ValidationErrors{{FieldPath: "$", Message: message}}
}

// Validate checks the in-memory state: every cgroup entry is a valid path and
// the port is within 1-65535.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if validationErrors := convertValidatorErrors(err); len(validationErrors) > 0 {
			return validationErrors
		}
		return err
	}
	return nil
}
