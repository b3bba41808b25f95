// Package version exposes the build-time identifier reported by the CLI
// and the collaborator servers.
package version

// Version is the pyjs toolchain version string.
const Version = "0.1.0"
