// Package potfile provides SQLite-based storage for recovered plaintexts.
//
// The potfile keeps two tables:
//   - cracked: one row per (hash, algorithm) with its plaintext
//   - crack_reports: every finished crack run, stored as JSON
//
// A hash found in the potfile is answered without scanning any wordlist.
// The store uses modernc.org/sqlite, so no cgo toolchain is needed.
package potfile
