package stylemap

// Version is the library release, surfaced by the CLI version command.
const Version = "0.3.0"
