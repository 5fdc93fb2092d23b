// Package terminal walks a quote form session through interactive prompts.
package terminal
