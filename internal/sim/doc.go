// Package sim provides a line-oriented command shell over a ring. It parses
// commands, applies them to the ring and renders the resulting snapshots as
// aligned text tables. It carries no placement logic of its own.
package sim
