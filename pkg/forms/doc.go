// Package forms holds the stateless helpers the hub's submission forms use:
// field validators, number and currency parsing, and a password strength
// heuristic. Nothing here talks to the API.
package forms
