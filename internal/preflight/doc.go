// Package preflight provides readiness checks for the files and services a
// wavscribe run depends on.
//
// The CLI "wavscribe check" command calls RunAll and renders each Result as a
// status line. Checks never modify the filesystem; a missing output directory
// passes when its nearest existing parent is writable, since runs create it.
package preflight
