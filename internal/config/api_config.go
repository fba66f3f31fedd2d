package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	apiBaseURLVar = "API_BASE_URL"
	apiVersionVar = "API_VERSION"
	apiTimeoutVar = "API_TIMEOUT"
)

type APIConfig interface {
	GetAPIBaseURL() string
	GetAPIVersion() string
	GetAPIURL() string
	GetAPITimeout() time.Duration
}

type API struct{}

var _ APIConfig = API{}

func (API) GetAPIBaseURL() string {
	return strings.TrimRight(GetEnv(apiBaseURLVar, "http://localhost:5000"), "/")
}

func (API) GetAPIVersion() string {
	return GetEnv(apiVersionVar, "v1")
}

// GetAPIURL is the root every resource path is resolved against, e.g. http://localhost:5000/api/v1
func (a API) GetAPIURL() string {
	return fmt.Sprintf("%s/api/%s", a.GetAPIBaseURL(), a.GetAPIVersion())
}

func (API) GetAPITimeout() time.Duration {
	d, err := time.ParseDuration(GetEnv(apiTimeoutVar, "30s"))
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}
