package version

// Version is the application version. Overridden via -ldflags at release time.
var Version = "0.3.1"
