// Package paginate splits chapter prose into reader pages on paragraph
// boundaries.
package paginate
