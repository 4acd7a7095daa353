package config

// Defaults applied when corresponding Config fields are unset.
const (
	DefaultName         = "default"
	DefaultAddr         = ":8080"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"
	DefaultRecordLimit  = 1000
	DefaultMaxBodyBytes = 1 << 20
)

// Defaults returns a copy of c with unset fields filled in.
func (c Config) Defaults() Config {
	if c.Name == "" {
		c.Name = DefaultName
	}
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	if c.RecordLimit <= 0 {
		c.RecordLimit = DefaultRecordLimit
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.CORS.Enabled && len(c.CORS.Origins) == 0 {
		c.CORS.Origins = []string{"*"}
	}
	return c
}
