package config

const (
	defaultDataDir             = "~/.local/share/tasknotify"
	defaultLogDir              = "~/.local/share/tasknotify/logs"
	defaultAPIBind             = "127.0.0.1:7519"
	defaultPushEndpoint        = ""
	defaultPushRequestTimeout  = 10
	defaultNotificationChannel = "high_importance_channel"
	defaultClickAction         = "FLUTTER_NOTIFICATION_CLICK"
	defaultIcon                = "ic_launcher"
	defaultScanIntervalMinutes = 30
	defaultTimeZone            = "UTC"
	defaultScanConcurrency     = 4
	defaultLogFormat           = "auto"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		Push: Push{
			Endpoint:            defaultPushEndpoint,
			RequestTimeout:      defaultPushRequestTimeout,
			NotificationChannel: defaultNotificationChannel,
			ClickAction:         defaultClickAction,
			Icon:                defaultIcon,
		},
		Scheduler: Scheduler{
			ScanInterval: defaultScanIntervalMinutes,
			TimeZone:     defaultTimeZone,
		},
		Workers: Workers{
			ScanConcurrency: defaultScanConcurrency,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
