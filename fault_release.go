//go:build release

package batch

const verboseFaults = false
