package model

import (
	"fmt"
	"strings"
)

const (
	ProviderMinio = "minio"
	ProviderS3    = "s3"
)

// EndpointConfig describes one side of a migration.
type EndpointConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"`
	Endpoint  string `yaml:"endpoint" mapstructure:"endpoint"`
	AccessKey string `yaml:"access_key" mapstructure:"access_key"`
	SecretKey string `yaml:"secret_key" mapstructure:"secret_key"`
	Bucket    string `yaml:"bucket" mapstructure:"bucket"`
	Region    string `yaml:"region,omitempty" mapstructure:"region"`
	Secure    bool   `yaml:"secure" mapstructure:"secure"`
	PathStyle bool   `yaml:"path_style,omitempty" mapstructure:"path_style"`
}

// DefaultEndpointConfig holds the values used for fields a config file
// leaves out: a MinIO endpoint reached over TLS.
func DefaultEndpointConfig() EndpointConfig {
	return EndpointConfig{
		Provider: ProviderMinio,
		Secure:   true,
	}
}

// Validate reports the first missing or inconsistent field. side names the
// endpoint in the message.
func (e EndpointConfig) Validate(side string) error {
	switch strings.ToLower(e.Provider) {
	case ProviderMinio:
		if e.Endpoint == "" {
			return fmt.Errorf("%s: endpoint is required", side)
		}
		if e.AccessKey == "" || e.SecretKey == "" {
			return fmt.Errorf("%s: access_key and secret_key are required", side)
		}
	case ProviderS3:
		if (e.AccessKey == "") != (e.SecretKey == "") {
			return fmt.Errorf("%s: access_key and secret_key must be provided together", side)
		}
	default:
		return fmt.Errorf("%s: unknown provider %q", side, e.Provider)
	}

	if e.Bucket == "" {
		return fmt.Errorf("%s: bucket is required", side)
	}
	return nil
}

// AppConfig is the content of the config file.
type AppConfig struct {
	Source      EndpointConfig `yaml:"source" mapstructure:"source"`
	Destination EndpointConfig `yaml:"destination" mapstructure:"destination"`
}
