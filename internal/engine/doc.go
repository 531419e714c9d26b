// Package engine implements the parallel dictionary scan.
//
// Crack loads a candidate source, partitions it into fixed size contiguous
// chunks and runs a fixed pool of workers over them. Workers claim whole
// chunks from a shared counter and evaluate a single matcher, resolved once
// before the scan, over every candidate in the chunk.
//
// The first match found by any worker wins. Workers share one atomic stop
// flag that flips false to true at most once per scan; once it is set no new
// chunk is claimed, while chunks already in progress finish normally. When
// the target appears more than once in the source, which instance is
// returned is unspecified.
//
// A source that cannot be read is reported as an error wrapping
// wordlist.ErrUnreadable, never as "not found".
package engine
