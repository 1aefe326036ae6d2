// Package config holds the cgproxy settings: which cgroups are proxied or
// exempt, which protocols and address families are intercepted, the listen
// port and gateway mode.
//
// The on-disk form is a JSON object with exactly nine keys. Untrusted JSON goes
// through ValidateJSON before any field is touched, so a rejected document never
// changes the Config. Documents that pass validation are applied field by field
// and the outcome of every field is returned in a LoadReport.
//
// Before the settings are exported, MergeReserved puts the reserved cgroup of
// each list at index 0. ToEnv returns the exported variables as an Environment
// and the caller decides when to write them into the process environment,
// normally right before spawning the interception worker.
//
// # Example Usage
//
//	cfg := config.NewConfig()
//	if _, err := cfg.LoadFromFile("/etc/cgproxy/config.json"); err != nil {
//	    log.Fatalf("%v", err)
//	}
//	if err := cfg.ToEnv().Apply(); err != nil {
//	    log.Fatalf("%v", err)
//	}
//
// The worker side reads the variables back with FromEnv.
package config
