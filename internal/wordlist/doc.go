// Package wordlist provides candidate sources for the crack engine and
// locates wordlist files on disk.
//
// A Source yields the full ordered sequence of candidates in one bulk read.
// Input is newline delimited text; a trailing newline is optional and a
// trailing carriage return on each line is dropped. Bytes that are not valid
// UTF-8 are replaced with U+FFFD so a single corrupt byte never drops a line
// or aborts the read.
//
// Discover and Resolve implement the wordlist directory conventions of the
// CLI: wordlist.txt first, rockyou.txt second, every other *.txt after that
// in alphabetical order.
package wordlist
