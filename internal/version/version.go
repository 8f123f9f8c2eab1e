package version

// Version is overridden at build time via -ldflags.
var Version = "3.0.0-dev"
