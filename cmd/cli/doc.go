// Package cli constructs the spacesync command-line interface, wiring the
// Cobra command hierarchy, configuration loader, and structured logging
// primitives around the space workflows.
package cli
