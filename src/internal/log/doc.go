// Package log provides simple leveled logging for cgproxy.
//
// Messages are prefixed with a colored level tag (DBG, INF, WRN, ERR). Debug
// messages are only shown in verbose mode. Warnings and errors go to stderr,
// everything else to stdout unless SetForceStdErr(true) is set.
//
// # Example Usage
//
//	log.Infof("loading config: %s", path)
//	log.Warnf("field %s skipped: %v", name, err)
//
//	log.SetVerbose(true)
//	log.Debugf("merged cgroup_proxy: %v", cfg.CgroupProxy)
//
// Fatal errors exit the process:
//
//	if err != nil {
//	    log.Fatalf("Failed to start control API: %v", err) // Exits with code 1
//	}
package log
