// Package ui renders workflow notifications and command lifecycle events for
// console users while detailed telemetry continues to flow through structured
// loggers.
package ui
