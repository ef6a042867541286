// Package language maps run language codes to recognition locales.
//
// Locale tags are golang.org/x/text/language values so recognition clients
// can render them either as BCP 47 strings (en-US) or bare ISO 639-1 codes.
package language
