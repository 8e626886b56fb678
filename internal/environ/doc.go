// Package environ abstracts the environment variable store the credential
// resolver reads from and writes back to. OS is backed by the process
// environment; Memory is an isolated map for tests and for callers that must
// not mutate process state.
package environ
