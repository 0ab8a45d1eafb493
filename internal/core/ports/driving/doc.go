// Package driving defines the inbound ports of the levelscout core: the
// use-case interfaces driving adapters (chat handler, CLI, TUI) call into.
package driving
