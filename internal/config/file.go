package config

import "time"

// File represents the structure of the .facultyscan configuration file.
// Zero values mean "not set" and leave the current setting alone.
type File struct {
	// Seed is the crawl start URL.
	Seed string `yaml:"seed,omitempty"`

	// Target configures how the faculty page is recognized.
	Target TargetFile `yaml:"target,omitempty"`

	// Extract configures record extraction.
	Extract ExtractFile `yaml:"extract,omitempty"`

	// HTTP configures the page fetcher.
	HTTP HTTPFile `yaml:"http,omitempty"`

	// Database configures page and record storage.
	Database DatabaseFile `yaml:"database,omitempty"`
}

// TargetFile holds target page detection settings.
type TargetFile struct {
	Marker string `yaml:"marker,omitempty"`
	Phrase string `yaml:"phrase,omitempty"`
}

// ExtractFile holds extraction settings.
type ExtractFile struct {
	// Block is the CSS selector of one faculty block.
	Block string `yaml:"block,omitempty"`

	// PagePattern selects the stored page to extract from.
	PagePattern string `yaml:"pagePattern,omitempty"`

	// Concurrency is the number of files extracted in parallel.
	Concurrency int `yaml:"concurrency,omitempty"`
}

// HTTPFile holds fetcher settings.
type HTTPFile struct {
	// Timeout is a Go duration string such as "30s".
	Timeout time.Duration `yaml:"timeout,omitempty"`

	UserAgent   string `yaml:"userAgent,omitempty"`
	MaxBodySize int64  `yaml:"maxBodySize,omitempty"`

	// Headers are added to every request, e.g. a session cookie.
	Headers map[string]string `yaml:"headers,omitempty"`
}

// DatabaseFile holds storage settings.
type DatabaseFile struct {
	Driver      string `yaml:"driver,omitempty"`
	Dir         string `yaml:"dir,omitempty"`
	DSN         string `yaml:"dsn,omitempty"`
	PageTable   string `yaml:"pageTable,omitempty"`
	RecordTable string `yaml:"recordTable,omitempty"`
}

// Apply copies every value set in the file onto cfg.
// Headers are merged; file headers win over existing ones with the same name.
func (cf *File) Apply(cfg *Config) {
	setString(&cfg.SeedURL, cf.Seed)
	setString(&cfg.TargetMarker, cf.Target.Marker)
	setString(&cfg.TargetPhrase, cf.Target.Phrase)

	setString(&cfg.BlockSelector, cf.Extract.Block)
	setString(&cfg.PagePattern, cf.Extract.PagePattern)
	if cf.Extract.Concurrency != 0 {
		cfg.ExtractConcurrency = cf.Extract.Concurrency
	}

	if cf.HTTP.Timeout != 0 {
		cfg.Timeout = cf.HTTP.Timeout
	}
	setString(&cfg.UserAgent, cf.HTTP.UserAgent)
	if cf.HTTP.MaxBodySize != 0 {
		cfg.MaxBodySize = cf.HTTP.MaxBodySize
	}
	if len(cf.HTTP.Headers) > 0 {
		if cfg.Headers == nil {
			cfg.Headers = make(map[string]string)
		}
		for k, v := range cf.HTTP.Headers {
			cfg.Headers[k] = v
		}
	}

	setString(&cfg.DBDriver, cf.Database.Driver)
	setString(&cfg.DBDir, cf.Database.Dir)
	setString(&cfg.DSN, cf.Database.DSN)
	setString(&cfg.PageTable, cf.Database.PageTable)
	setString(&cfg.RecordTable, cf.Database.RecordTable)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
