package version

// Version is the amalgo release version.
const Version = "0.1.0"
