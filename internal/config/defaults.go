package config

const (
	defaultStateDir       = "~/.local/share/shelfscan"
	defaultLogDir         = "~/.local/share/shelfscan/logs"
	defaultCatalogBaseURL = "https://api.shelfscan.dev/v1"
	defaultCatalogTimeout = 10
	defaultSearchLimit    = 10
	defaultMinSimilarity  = 0.3
	defaultTaskTimeout    = 15
	defaultUserID         = "default"
	defaultNotifyTimeout  = 10
	defaultLogFormat      = "auto"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Catalog: Catalog{
			BaseURL:        defaultCatalogBaseURL,
			RequestTimeout: defaultCatalogTimeout,
		},
		Matching: Matching{
			SearchLimit:   defaultSearchLimit,
			MinSimilarity: defaultMinSimilarity,
			TaskTimeout:   defaultTaskTimeout,
		},
		Collection: Collection{
			UserID: defaultUserID,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			Scan:           true,
			Collection:     true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
