// Credresolver resolves the API key and base URL an assistant session would
// use and prints them, with the key masked, or as shell exports.
//
// Usage:
//
//	credresolver                      # text summary
//	credresolver --format json        # machine-readable summary
//	eval "$(credresolver --format env)"
//
// Exit status is 1 when no API key is configured and 2 on invalid flags or
// configuration.
package main
