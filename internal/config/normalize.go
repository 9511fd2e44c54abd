package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizePush(); err != nil {
		return err
	}
	c.normalizeScheduler()
	c.normalizeWorkers()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	c.Paths.APIToken = strings.TrimSpace(c.Paths.APIToken)
	return nil
}

func (c *Config) normalizePush() error {
	c.Push.Endpoint = strings.TrimRight(strings.TrimSpace(c.Push.Endpoint), "/")
	c.Push.ProjectID = strings.TrimSpace(c.Push.ProjectID)
	c.Push.BearerToken = strings.TrimSpace(c.Push.BearerToken)
	if c.Push.BearerToken == "" {
		if value, ok := os.LookupEnv("TASKNOTIFY_PUSH_TOKEN"); ok {
			c.Push.BearerToken = strings.TrimSpace(value)
		}
	}
	if c.Push.TokenFile != "" {
		expanded, err := expandPath(c.Push.TokenFile)
		if err != nil {
			return fmt.Errorf("push.token_file: %w", err)
		}
		c.Push.TokenFile = expanded
	}
	if c.Push.RequestTimeout <= 0 {
		c.Push.RequestTimeout = defaultPushRequestTimeout
	}
	if strings.TrimSpace(c.Push.NotificationChannel) == "" {
		c.Push.NotificationChannel = defaultNotificationChannel
	}
	if strings.TrimSpace(c.Push.ClickAction) == "" {
		c.Push.ClickAction = defaultClickAction
	}
	if strings.TrimSpace(c.Push.Icon) == "" {
		c.Push.Icon = defaultIcon
	}
	return nil
}

func (c *Config) normalizeScheduler() {
	if c.Scheduler.ScanInterval <= 0 {
		c.Scheduler.ScanInterval = defaultScanIntervalMinutes
	}
	c.Scheduler.TimeZone = strings.TrimSpace(c.Scheduler.TimeZone)
	if c.Scheduler.TimeZone == "" {
		c.Scheduler.TimeZone = defaultTimeZone
	}
}

func (c *Config) normalizeWorkers() {
	if c.Workers.ScanConcurrency <= 0 {
		c.Workers.ScanConcurrency = defaultScanConcurrency
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
