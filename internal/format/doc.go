// Package format normalizes the whitespace of hkanno text.
//
// Comment lines lose their leading whitespace and are otherwise kept verbatim.
// Every other line is reduced to its whitespace-separated tokens joined by
// single spaces. Text is idempotent.
package format
