// Package driven defines the outbound ports of the levelscout core:
// interfaces the core calls out through, implemented by adapters under
// internal/adapters/driven. The core never imports an adapter; adapters
// satisfy these interfaces and are injected at wiring time.
package driven
