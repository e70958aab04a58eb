// Package process terminates the headless browser spawned for PDF export
// together with its helper processes.
package process
