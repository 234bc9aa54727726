package bootstrap

// AppConfig holds HallBook-specific settings loaded on top of WAFFLE's
// core configuration. Extend this struct as the app grows.
type AppConfig struct {
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Operator console session.
	SessionKey    string
	SessionDomain string

	// bcrypt hash of the operator console password. Empty disables
	// console login entirely.
	ConsolePasswordHash string

	// Optional seed files ingested at startup, one numeric user ID
	// per line.
	AdminlistPath string
	WhitelistPath string
}
