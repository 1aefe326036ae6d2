package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FieldKind is the value type of a configuration key.
type FieldKind int

const (
	// KindCgroupList accepts a cgroup path or an array of cgroup paths.
	KindCgroupList FieldKind = iota
	// KindPort accepts an integer in 1-65535.
	KindPort
	// KindBool accepts a JSON boolean.
	KindBool
)

func (k FieldKind) String() string {
	switch k {
	case KindCgroupList:
		return "cgroup list"
	case KindPort:
		return "port"
	case KindBool:
		return "boolean"
	default:
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
}

// Field describes one configuration key. The loader, serializer, validator
// and environment exporter all walk Fields, so a key is declared only here.
type Field struct {
	Name string
	Kind FieldKind
	// Reserved is the entry MergeReserved keeps at index 0 (KindCgroupList only).
	Reserved string

	list func(c *Config) *[]string
	port func(c *Config) *int
	flag func(c *Config) *bool
}

// Fields is the closed set of configuration keys, in serialization order.
var Fields = []Field{
	{
		Name:     "cgroup_proxy",
		Kind:     KindCgroupList,
		Reserved: ReservedProxyCgroup,
		list:     func(c *Config) *[]string { return &c.CgroupProxy },
	},
	{
		Name:     "cgroup_noproxy",
		Kind:     KindCgroupList,
		Reserved: ReservedNoProxyCgroup,
		list:     func(c *Config) *[]string { return &c.CgroupNoProxy },
	},
	boolField("enable_gateway", func(c *Config) *bool { return &c.EnableGateway }),
	{
		Name: "port",
		Kind: KindPort,
		port: func(c *Config) *int { return &c.Port },
	},
	boolField("enable_dns", func(c *Config) *bool { return &c.EnableDNS }),
	boolField("enable_tcp", func(c *Config) *bool { return &c.EnableTCP }),
	boolField("enable_udp", func(c *Config) *bool { return &c.EnableUDP }),
	boolField("enable_ipv4", func(c *Config) *bool { return &c.EnableIPv4 }),
	boolField("enable_ipv6", func(c *Config) *bool { return &c.EnableIPv6 }),
}

func boolField(name string, flag func(c *Config) *bool) Field {
	return Field{Name: name, Kind: KindBool, flag: flag}
}

// FieldByName looks a key up in Fields.
func FieldByName(name string) (Field, bool) {
	for _, f := range Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FieldNames returns the keys of Fields in order.
func FieldNames() []string {
	names := make([]string, len(Fields))
	for i, f := range Fields {
		names[i] = f.Name
	}
	return names
}

// check validates a raw JSON value for this key. It returns the path of the
// offending element (the key itself or key.index) and a message.
func (f Field) check(raw json.RawMessage) (path string, message string, ok bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var value interface{}
	if err := dec.Decode(&value); err != nil {
		return f.Name, fmt.Sprintf("invalid JSON value: %v", err), false
	}

	switch f.Kind {
	case KindCgroupList:
		switch v := value.(type) {
		case string:
			if msg := checkVar(v, "cgroup"); msg != "" {
				return f.Name, msg, false
			}
		case []interface{}:
			for i, item := range v {
				s, isString := item.(string)
				if !isString {
					return f.Name + "." + strconv.Itoa(i), "must be a string", false
				}
				if msg := checkVar(s, "cgroup"); msg != "" {
					return f.Name + "." + strconv.Itoa(i), msg, false
				}
			}
		default:
			return f.Name, "must be a string or an array of strings", false
		}
	case KindPort:
		n, isNumber := value.(json.Number)
		if !isNumber {
			return f.Name, "must be an integer", false
		}
		port, err := n.Int64()
		if err != nil {
			return f.Name, "must be an integer", false
		}
		if msg := checkVar(port, "port"); msg != "" {
			return f.Name, msg, false
		}
	case KindBool:
		if _, isBool := value.(bool); !isBool {
			return f.Name, "must be a boolean", false
		}
	}
	return "", "", true
}

// apply decodes raw into the field of c. On a type mismatch c is left as is.
func (f Field) apply(c *Config, raw json.RawMessage) error {
	switch f.Kind {
	case KindCgroupList:
		var v []string
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		if v == nil {
			v = []string{}
		}
		*f.list(c) = v
	case KindPort:
		var v int
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		*f.port(c) = v
	case KindBool:
		var v bool
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		*f.flag(c) = v
	}
	return nil
}

// value returns the field of c as a JSON-encodable value.
func (f Field) value(c *Config) interface{} {
	switch f.Kind {
	case KindCgroupList:
		v := *f.list(c)
		if v == nil {
			return []string{}
		}
		return v
	case KindPort:
		return *f.port(c)
	default:
		return *f.flag(c)
	}
}

// format returns the field of c as an environment variable value.
func (f Field) format(c *Config) string {
	switch f.Kind {
	case KindCgroupList:
		return strings.Join(*f.list(c), ":")
	case KindPort:
		return strconv.Itoa(*f.port(c))
	default:
		return strconv.FormatBool(*f.flag(c))
	}
}
