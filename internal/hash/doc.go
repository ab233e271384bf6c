// Package hash maps strings onto the 360-degree ring coordinate space.
// All functions are pure: the same input always yields the same angle,
// across calls and process runs.
package hash
