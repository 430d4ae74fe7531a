package main

import (
	"github.com/ivlev/solar2video/internal/system"
)

// Set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Raise the open file limit (macOS/Linux)
	system.InitResourceLimits()

	Execute()
}
