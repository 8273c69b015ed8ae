//go:build !release

package utils

const assertionsEnabled = true
