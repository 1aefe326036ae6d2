package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/valyala/fasttemplate"

	"github.com/maksimkurb/cgproxy/src/internal/errors"
)

// Placeholders available to Environment.Render.
const (
	ENV_TMPL_NAME  = "name"
	ENV_TMPL_VALUE = "value"
)

// DefaultEnvTemplate renders a POSIX shell export line.
const DefaultEnvTemplate = "export {{name}}='{{value}}'"

// EnvVar is one exported variable.
type EnvVar struct {
	Name  string
	Value string
}

// Environment is the exported form of a Config, one variable per key in
// Fields order.
type Environment []EnvVar

// ToEnv runs MergeReserved and returns the variables the interception worker
// reads. Lists are joined with ':'. Nothing is written to the process
// environment; see Environment.Apply.
func (c *Config) ToEnv() Environment {
	c.MergeReserved()

	environment := make(Environment, 0, len(Fields))
	for _, field := range Fields {
		environment = append(environment, EnvVar{Name: field.Name, Value: field.format(c)})
	}
	return environment
}

// Apply writes every variable into the process environment. Call it before
// spawning the worker so the worker inherits the values.
func (e Environment) Apply() error {
	for _, v := range e {
		if err := os.Setenv(v.Name, v.Value); err != nil {
			return errors.NewInternalError(fmt.Sprintf("failed to set %s", v.Name), err)
		}
	}
	return nil
}

// Get returns the value of name.
func (e Environment) Get(name string) (string, bool) {
	for _, v := range e {
		if v.Name == name {
			return v.Value, true
		}
	}
	return "", false
}

// Map returns the variables as a map.
func (e Environment) Map() map[string]string {
	m := make(map[string]string, len(e))
	for _, v := range e {
		m[v.Name] = v.Value
	}
	return m
}

// Environ returns the variables as "name=value" pairs for exec.Cmd.Env.
func (e Environment) Environ() []string {
	pairs := make([]string, len(e))
	for i, v := range e {
		pairs[i] = v.Name + "=" + v.Value
	}
	return pairs
}

// Render formats every variable with tmpl, one per line. tmpl may use the
// {{name}} and {{value}} placeholders.
func (e Environment) Render(tmpl string) (string, error) {
	t, err := fasttemplate.NewTemplate(tmpl, "{{", "}}")
	if err != nil {
		return "", errors.NewParamError("invalid env template", err)
	}

	var sb strings.Builder
	for _, v := range e {
		sb.WriteString(t.ExecuteString(map[string]interface{}{
			ENV_TMPL_NAME:  v.Name,
			ENV_TMPL_VALUE: v.Value,
		}))
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// FromEnv rebuilds a Config from exported variables, starting from the
// defaults. A nil environ reads the process environment. Values that do not
// parse, or that fail Validate, yield a PARAM_ERROR.
func FromEnv(environ map[string]string) (*Config, error) {
	cfg := NewConfig()

	opts := env.Options{Environment: environ}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, errors.NewParamError("failed to parse environment", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.NewParamError("invalid environment", err)
	}
	return cfg, nil
}
