// Package tests runs the k6 module end to end against the development
// experiment API.
package tests
