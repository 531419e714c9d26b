// Package pipeline runs a crack job through a fixed sequence of steps.
//
// A job starts with a potfile lookup, then scans each wordlist under each
// candidate algorithm, and finally records a recovered plaintext back into
// the potfile. Each stage is a Step that receives the CrackReport and fills
// in its part.
//
// Wordlists are the outer loop and algorithms the inner one. The first
// successful (wordlist, algorithm) pair ends the job. A wordlist that cannot
// be read is recorded as a failed attempt and the next wordlist is tried.
//
// BatchProcessor runs many jobs concurrently with errgroup, bounded by a
// configurable limit.
package pipeline
