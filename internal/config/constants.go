package config

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./database.db"

	// DefaultEnvFile is read on startup when present
	DefaultEnvFile = ".env"
)
