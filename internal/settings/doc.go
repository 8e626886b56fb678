// Package settings loads the optional ~/.claude/settings.json document and
// exposes its env block as plain strings. A missing or malformed file is not
// an error: Load reports it as absent.
package settings
