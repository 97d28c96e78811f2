package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// MaxUploadMB caps the request body size, in megabytes.
	MaxUploadMB int `mapstructure:"max_upload_mb" default:"32"`
}

// DefaultMaxUploadMB applies when MaxUploadMB is unset or invalid.
const DefaultMaxUploadMB = 32

// BodyLimit returns the maximum request body size in bytes.
func (c Config) BodyLimit() int {
	mb := c.MaxUploadMB
	if mb <= 0 {
		mb = DefaultMaxUploadMB
	}
	return mb * 1024 * 1024
}
