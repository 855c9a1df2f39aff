package config

const (
	defaultCatalogDir        = "catalog"
	defaultLogDir            = "~/.local/share/stationcat/logs"
	defaultWikiHost          = "stationeers-wiki.com"
	defaultWikiBaseURL       = "https://stationeers-wiki.com"
	defaultWikiUserAgent     = "stationcat-wiki-import/0.1 (text-based IC10 IDE tooling)"
	defaultWikiTimeout       = 30
	defaultWikiMaxBodyBytes  = 20 << 20
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultHistoryEnabled    = true
	defaultHistoryPath       = "~/.local/share/stationcat/history.db"
	defaultWatchDebounceMsec = 250
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CatalogDir: defaultCatalogDir,
			LogDir:     defaultLogDir,
		},
		Wiki: Wiki{
			Host:           defaultWikiHost,
			BaseURL:        defaultWikiBaseURL,
			UserAgent:      defaultWikiUserAgent,
			TimeoutSeconds: defaultWikiTimeout,
			MaxBodyBytes:   defaultWikiMaxBodyBytes,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled: defaultHistoryEnabled,
			Path:    defaultHistoryPath,
		},
		Watch: Watch{
			DebounceMillis: defaultWatchDebounceMsec,
		},
	}
}
