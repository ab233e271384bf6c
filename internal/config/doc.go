// Package config holds the simulator's startup configuration and the parsing
// helpers the command line uses to fill it.
package config
