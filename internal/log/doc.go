// Package log provides secure logging built on top of the standard slog
// package.
//
// The SecureHandler masks recovered plaintexts and wordlist candidates so
// that a verbose log shared in a bug report does not leak cracked
// passwords. Target digests are left readable: they are what the user
// typed on the command line.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//
//	logger.Info("hash cracked",
//	    "hash", "900150983cd24fb0d6963f7d28e17f72", // kept
//	    "plaintext", "abc",                          // masked
//	)
//
//	slog.SetDefault(logger)
package log
