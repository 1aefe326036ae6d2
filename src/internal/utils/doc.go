// Package utils provides small helpers shared across cgproxy: cgroup path and
// port validators, path resolution and file closing.
//
//	utils.IsValidCgroup("/system.slice/sshd.service") // true
//	utils.IsValidPortNumber(70000)                    // false
//	utils.ResolvePath("config.json")                  // "<cwd>/config.json"
package utils
