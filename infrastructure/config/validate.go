package config

import (
	"fmt"
	"net/url"
)

// ValidationError reports an invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateRequired checks that value is non-empty.
func ValidateRequired(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}

// ValidatePort checks that port is a usable TCP port.
func ValidatePort(field string, port int) error {
	if port < 1 || port > 65535 {
		return &ValidationError{Field: field, Message: "must be between 1 and 65535"}
	}
	return nil
}

// ValidateAbsoluteURL checks that raw parses as an http or https URL with a host.
func ValidateAbsoluteURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return &ValidationError{Field: field, Message: "must be an absolute http(s) URL"}
	}
	return nil
}

// ValidateLogLevel checks that level is one the logger understands.
func ValidateLogLevel(field, level string) error {
	switch level {
	case "debug", "info", "warn", "warning", "error", "fatal":
		return nil
	default:
		return &ValidationError{Field: field, Message: "must be one of: debug, info, warn, error, fatal"}
	}
}

// Validate checks the server section.
func (c *ServerConfig) Validate() error {
	return ValidatePort("server.port", c.Port)
}

// Validate checks the database section.
func (c *DatabaseConfig) Validate() error {
	if err := ValidateRequired("database.host", c.Host); err != nil {
		return err
	}
	if err := ValidatePort("database.port", c.Port); err != nil {
		return err
	}
	if err := ValidateRequired("database.user", c.User); err != nil {
		return err
	}
	return ValidateRequired("database.database", c.Database)
}

// Validate checks the elasticsearch section when it is enabled.
func (c *ElasticsearchConfig) Validate() error {
	if !c.Enabled() {
		return nil
	}
	return ValidateAbsoluteURL("elasticsearch.url", c.URL)
}
