package main

import (
	"fmt"
	"io"
)

const banner = `
  _               _            _
 | |__   __ _ ___| |__  _ __ _(_)_ __  _ __   ___ _ __
 | '_ \ / _' / __| '_ \| '__| | '_ \| '_ \ / _ \ '__|
 | | | | (_| \__ \ | | | |  | | |_) | |_) |  __/ |
 |_| |_|\__,_|___/_| |_|_|  |_| .__/| .__/ \___|_|
                              |_|   |_|`

// printBanner writes the startup banner. Nothing is written in quiet mode.
func printBanner(w io.Writer, quiet bool) {
	if quiet {
		return
	}
	fmt.Fprintln(w, banner)
	fmt.Fprintf(w, "  dictionary hash cracker %s\n\n", getVersion())
}
