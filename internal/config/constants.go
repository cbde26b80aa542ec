package config

const (
	// DefaultClippingsPath matches where a mounted Kindle export usually
	// ends up after copying it next to the binary.
	DefaultClippingsPath = "My Clippings.txt"

	DefaultOutputDir    = "highlights"
	DefaultFormat       = "markdown"
	DefaultDatabasePath = "./clipdoc.db"
)
