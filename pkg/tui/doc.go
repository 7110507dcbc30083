// Package tui walks a form session from a terminal. A PromptDriver asks one
// question per field; the Runner stores each answer in the session, shows the
// field's error and asks again until the field is valid, then submits.
package tui
