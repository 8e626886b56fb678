// Package credentials resolves the API key and base URL for the assistant.
//
// Resolution order for the API key (first non-empty wins):
//  1. ANTHROPIC_API_KEY from the ambient environment
//  2. ANTHROPIC_AUTH_TOKEN from the ambient environment
//  3. env.ANTHROPIC_API_KEY in ~/.claude/settings.json
//  4. env.ANTHROPIC_AUTH_TOKEN in ~/.claude/settings.json
//
// The base URL comes from ANTHROPIC_BASE_URL, then settings.json, and is left
// empty otherwise. Before resolving, every settings env entry is copied into
// the environment unless the variable is already set; after resolving, the key
// is written to both ANTHROPIC_API_KEY and ANTHROPIC_AUTH_TOKEN and the base
// URL, when present, to ANTHROPIC_BASE_URL. WithExport(false) turns both
// writes off and returns the Credentials value only.
package credentials
