package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Credentials for the Cloudinary account the listings are served from.
type Credentials struct {
	CloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	APIKey    string `env:"CLOUDINARY_API_KEY"`
	APISecret string `env:"CLOUDINARY_API_SECRET"`
}

// ParseCredentials loads the credentials from environment variables. Missing
// values are not an error here, see Missing.
func ParseCredentials() (Credentials, error) {
	var creds Credentials
	if err := env.Parse(&creds); err != nil {
		return creds, fmt.Errorf("failed to parse env: %w", err)
	}
	return creds, nil
}

// ParseCredentialsFrom is ParseCredentials over an explicit environment.
func ParseCredentialsFrom(environment map[string]string) (Credentials, error) {
	var creds Credentials
	if err := env.ParseWithOptions(&creds, env.Options{Environment: environment}); err != nil {
		return creds, fmt.Errorf("failed to parse env: %w", err)
	}
	return creds, nil
}

// Missing returns the names of the unset variables.
func (c Credentials) Missing() []string {
	var missing []string
	if strings.TrimSpace(c.CloudName) == "" {
		missing = append(missing, "CLOUDINARY_CLOUD_NAME")
	}
	if strings.TrimSpace(c.APIKey) == "" {
		missing = append(missing, "CLOUDINARY_API_KEY")
	}
	if strings.TrimSpace(c.APISecret) == "" {
		missing = append(missing, "CLOUDINARY_API_SECRET")
	}
	return missing
}

func (c Credentials) Complete() bool {
	return len(c.Missing()) == 0
}
