// Package commands implements the cgproxy subcommands.
//
// Each command implements Runner: Init parses its own flag set and loads the
// configuration, Run does the work, Name returns the word used on the command
// line.
//
// # Available Commands
//
//   - show: print the configuration file and its fingerprint
//   - validate: check a JSON document without applying it
//   - set: apply a partial JSON document and save the result
//   - env: print the variables exported to the worker
//   - run: export the variables and start a worker process
//   - serve: run the control API on a unix socket
//
// Errors carry the codes from the errors package, so the caller can map
// them to exit statuses with errors.ExitCode.
//
//	cmd := commands.CreateSetCommand()
//	ctx := &commands.AppContext{ConfigPath: "/etc/cgproxy/config.json"}
//	if err := cmd.Init([]string{`{"port": 8080}`}, ctx); err != nil {
//	    os.Exit(errors.ExitCode(err))
//	}
//	if err := cmd.Run(); err != nil {
//	    os.Exit(errors.ExitCode(err))
//	}
package commands
