package version

// AppVersion is overridden at build time with
// -ldflags "-X stripper/version.AppVersion=..."
var AppVersion = "0.3.0"
