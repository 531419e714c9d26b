// Package model defines the result records shared by the pipeline, report
// writers and the potfile.
//
// CrackReport describes one target hash: the algorithms and wordlists that
// were tried, every individual attempt, and the final Status. Reports are
// serializable to JSON for report output and potfile history.
package model
