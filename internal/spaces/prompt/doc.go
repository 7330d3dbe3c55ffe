// Package prompt provides shared.Prompter implementations for the space
// workflows: a line reader for pipes, a terminal form, and preset answers
// supplied through flags or the environment.
package prompt
