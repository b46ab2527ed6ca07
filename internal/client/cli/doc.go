// Package cli implements habitcheck-cli, a command-line client for the
// habitcheck server built on kong.
//
// Credentials come from --username/--token or HABITCHECK_USERNAME and
// HABITCHECK_TOKEN. A missing token is read from the terminal without echo.
//
//	habitcheck-cli -u Mira checkin --journal --movement
//	habitcheck-cli -u Pascal users add Anna
package cli
