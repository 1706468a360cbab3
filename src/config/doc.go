// Package config defines the configuration of a Gossamer process.
//
// Every option has a default that works under a test harness, so the binary
// runs without flags, environment or configuration file. Options can be
// overridden, by increasing priority, from a gossamer.toml (or .yaml, .json)
// file in Config.DataDir, from GOSSAMER_* environment variables, and from
// command line flags.
//
// Standard output carries the protocol. Logs go to standard error and,
// optionally, to the file named by Config.LogFile.
package config
