// Package main provides the entry point for the hashripper CLI.
//
// hashripper recovers the plaintext behind an unsalted digest by hashing
// every line of one or more wordlists until a match is found.
//
// Usage:
//
//	hashripper crack <hash>
//	hashripper crack --list <file>
//
// See --help for all available options.
package main

// main is the entry point for hashripper.
func main() {
	Execute()
}
