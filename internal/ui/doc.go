// Package ui provides terminal output styling for scout: a shared color
// palette, status symbols, and table rendering for check results.
package ui
