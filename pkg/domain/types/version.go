package types

// Version is overwritten at build time via -ldflags.
var Version = "dev"

// DefaultStatusContext is the commit status context used when none is configured
const DefaultStatusContext = "coverage-notifications"
