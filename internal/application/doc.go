// Package application provides application initialization and dependency wiring.
// It builds the credential resolver and report writer from config, keeping the
// main package focused on CLI parsing and exit codes.
package application
