package utils

import "regexp"

const (
	MinPort = 1
	MaxPort = 65535
)

// Absolute cgroup path relative to the cgroup2 root, e.g. "/system.slice/sshd.service".
var rxCgroup = regexp.MustCompile(`^/[a-zA-Z0-9\-_./@]*$`)

// IsValidCgroup reports whether name is a syntactically valid cgroup path.
// The cgroup does not have to exist.
func IsValidCgroup(name string) bool {
	return rxCgroup.MatchString(name)
}

// IsValidPortNumber checks if port is within 1-65535.
func IsValidPortNumber(port int64) bool {
	return port >= MinPort && port <= MaxPort
}
