// Package config provides configuration structures and utilities for
// hashripper: engine tuning, wordlist locations, report preferences and the
// optional .hashripper YAML file.
package config
