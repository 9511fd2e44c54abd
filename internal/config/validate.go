package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validatePush(); err != nil {
		return err
	}
	if err := c.validateScheduler(); err != nil {
		return err
	}
	if err := c.validateWorkers(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.APIBind) == "" {
		return errors.New("paths.api_bind must be set")
	}
	return nil
}

func (c *Config) validatePush() error {
	// An empty endpoint is valid: deliveries degrade to a no-op gateway.
	if c.Push.Endpoint == "" {
		return nil
	}
	if c.Push.BearerToken == "" && c.Push.TokenFile == "" {
		return errors.New("push.bearer_token or push.token_file must be set when push.endpoint is configured (or set TASKNOTIFY_PUSH_TOKEN)")
	}
	if c.Push.RequestTimeout <= 0 {
		return errors.New("push.request_timeout must be positive")
	}
	if strings.TrimSpace(c.Push.NotificationChannel) == "" {
		return errors.New("push.notification_channel must be set; it has to match the channel registered by the mobile client")
	}
	return nil
}

func (c *Config) validateScheduler() error {
	if c.Scheduler.ScanInterval <= 0 {
		return errors.New("scheduler.scan_interval_minutes must be positive")
	}
	if _, err := time.LoadLocation(c.Scheduler.TimeZone); err != nil {
		return fmt.Errorf("scheduler.time_zone: %w", err)
	}
	return nil
}

func (c *Config) validateWorkers() error {
	if c.Workers.ScanConcurrency <= 0 {
		return errors.New("workers.scan_concurrency must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
