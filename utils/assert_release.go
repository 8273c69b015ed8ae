//go:build release

package utils

const assertionsEnabled = false
