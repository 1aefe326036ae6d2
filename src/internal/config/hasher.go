package config

import (
	"fmt"

	"github.com/maksimkurb/cgproxy/src/internal/hashing"
)

// Hash returns the MD5 of the canonical JSON form of c with reserved entries
// merged, so two configs that export the same environment hash alike.
// c itself is not modified.
func (c *Config) Hash() (string, error) {
	merged := c.Clone()
	merged.MergeReserved()

	data, err := merged.ToJSON()
	if err != nil {
		return "", fmt.Errorf("failed to marshal config data: %w", err)
	}

	proxy := hashing.NewMD5WriterProxy(nil)
	if _, err := proxy.Write(data); err != nil {
		return "", fmt.Errorf("failed to hash config data: %w", err)
	}
	return proxy.GetChecksum(), nil
}
