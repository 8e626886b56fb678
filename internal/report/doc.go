// Package report renders resolved credentials as text, JSON, YAML or shell
// export statements.
package report
