// Package cli implements the tmc command tree.
package cli
