// Package ui renders the operator-facing output of the launcher:
// the parameter banner, numbered pipeline steps, and the success
// summary with log-inspection guidance.
package ui
