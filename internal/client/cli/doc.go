// Package cli provides the interactive Loggy terminal client.
//
// It wires configuration, the API client and a small session store, then
// runs a REPL. The session token survives restarts in a 0600 file under
// the configured session directory.
//
// Commands: signup, login, logout, whoami, list, stats, add, edit, delete.
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
