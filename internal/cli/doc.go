// Package cli implements the bibliothek command line on top of the content
// gateway.
package cli
