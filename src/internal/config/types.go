package config

// Reserved cgroups. Each one is always present, and first, in its list once
// MergeReserved has run.
const (
	ReservedProxyCgroup   = "/proxy.slice"
	ReservedNoProxyCgroup = "/noproxy.slice"
)

// DefaultPort is the port the interception worker listens on when none is configured.
const DefaultPort = 12345

// DefaultConfigPath is where the CLI looks for the configuration file.
const DefaultConfigPath = "/etc/cgproxy/config.json"

// Config is the single in-memory copy of the user settings. It is not safe for
// concurrent use; callers sharing one Config must serialize access.
type Config struct {
	// CgroupProxy lists cgroups whose traffic is proxied.
	CgroupProxy []string `json:"cgroup_proxy" env:"cgroup_proxy" envSeparator:":" validate:"dive,cgroup"`
	// CgroupNoProxy lists cgroups whose traffic is never proxied.
	CgroupNoProxy []string `json:"cgroup_noproxy" env:"cgroup_noproxy" envSeparator:":" validate:"dive,cgroup"`
	// EnableGateway makes the proxy serve other hosts as well.
	EnableGateway bool `json:"enable_gateway" env:"enable_gateway"`
	// Port is the local port of the interception worker.
	Port int `json:"port" env:"port" validate:"port"`

	EnableDNS  bool `json:"enable_dns" env:"enable_dns"`
	EnableTCP  bool `json:"enable_tcp" env:"enable_tcp"`
	EnableUDP  bool `json:"enable_udp" env:"enable_udp"`
	EnableIPv4 bool `json:"enable_ipv4" env:"enable_ipv4"`
	EnableIPv6 bool `json:"enable_ipv6" env:"enable_ipv6"`
}

// NewConfig returns a Config holding the built-in defaults.
func NewConfig() *Config {
	return &Config{
		CgroupProxy:   []string{},
		CgroupNoProxy: []string{},
		EnableGateway: false,
		Port:          DefaultPort,
		EnableDNS:     true,
		EnableTCP:     true,
		EnableUDP:     true,
		EnableIPv4:    true,
		EnableIPv6:    true,
	}
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	clone := *c
	clone.CgroupProxy = append([]string{}, c.CgroupProxy...)
	clone.CgroupNoProxy = append([]string{}, c.CgroupNoProxy...)
	return &clone
}
