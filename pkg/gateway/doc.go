// Package gateway sends composed prompts to the completion backend and turns
// the outcome into a Result.
//
// A Gateway is built once from the provider configuration and never changes.
// Without a credential it is unconfigured and answers every call with
// KindUnconfigured without touching the network. Every other call makes
// exactly one backend request; any failure becomes KindUpstream, with the
// cause logged and kept on the Result for internal use only.
//
// Each call is measured, traced and, when a recorder is attached, written to
// the request journal.
package gateway
