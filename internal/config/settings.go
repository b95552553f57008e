// internal/config/settings.go
package config

import "github.com/spf13/viper"

// SettingType represents the type of a setting
type SettingType string

const (
	// String type for string settings
	String SettingType = "string"
	// Bool type for boolean settings
	Bool SettingType = "bool"
	// StringSlice type for string slice settings
	StringSlice SettingType = "stringSlice"
)

// Setting defines a configuration setting
type Setting struct {
	// Name is the name of the setting
	Name string
	// Short is a short description of the setting
	Short string
	// Type is the type of the setting
	Type SettingType
	// Default is the default value of the setting
	Default interface{}
	// Required indicates whether the setting is required
	Required bool
}

// SettingList is a list of settings
type SettingList []Setting

// PopulateViperDefaults sets default values for all settings in Viper
func (sl SettingList) PopulateViperDefaults(v *viper.Viper) {
	for _, s := range sl {
		v.SetDefault(s.Name, s.Default)
	}
}

// Settings defines all application settings
var Settings = SettingList{
	// Server settings
	{
		Name:    "SERVER_ADDR",
		Short:   "Address on which the server listens",
		Type:    String,
		Default: ":8000",
	},
	{
		Name:    "METRICS_ADDR",
		Short:   "Address on which the metrics server listens",
		Type:    String,
		Default: ":9090",
	},
	{
		Name:    "SHUTDOWN_TIMEOUT",
		Short:   "Maximum time to wait for graceful shutdown",
		Type:    String,
		Default: "30s",
	},

	// Upstream settings
	{
		Name:     "UPSTREAM_URL",
		Short:    "URL of the upstream application the gateway protects",
		Type:     String,
		Default:  "",
		Required: true,
	},
	{
		Name:    "UPSTREAM_TIMEOUT",
		Short:   "Timeout for upstream responses",
		Type:    String,
		Default: "30s",
	},

	// Identity platform settings
	{
		Name:     "PLATFORM_URL",
		Short:    "Base URL of the identity platform API",
		Type:     String,
		Default:  "",
		Required: true,
	},
	{
		Name:    "PLATFORM_TIMEOUT",
		Short:   "Timeout for identity platform calls",
		Type:    String,
		Default: "10s",
	},

	// Authentication flow settings
	{
		Name:     "AUTH_APP_ID",
		Short:    "Application identifier registered with the identity platform",
		Type:     String,
		Default:  "",
		Required: true,
	},
	{
		Name:     "AUTH_APP_KEY",
		Short:    "Application secret key",
		Type:     String,
		Default:  "",
		Required: true,
	},
	{
		Name:    "AUTH_COOKIE_NAME",
		Short:   "Name of the session ticket cookie",
		Type:    String,
		Default: "",
	},
	{
		Name:    "AUTH_COOKIE_SECURE",
		Short:   "Mark the session ticket cookie Secure",
		Type:    Bool,
		Default: false,
	},
	{
		Name:    "AUTH_LOGIN_URL",
		Short:   "URL of the platform's hosted login portal",
		Type:    String,
		Default: "",
	},
	{
		Name:    "AUTH_DEFAULT_REDIRECT",
		Short:   "Destination after login when no original path is known",
		Type:    String,
		Default: "",
	},
	{
		Name:    "AUTH_LOGOUT_REDIRECT",
		Short:   "Destination after logout",
		Type:    String,
		Default: "",
	},
	{
		Name:    "AUTH_CALLBACK_PATH",
		Short:   "Path where the login portal sends the user back",
		Type:    String,
		Default: "",
	},
	{
		Name:    "AUTH_LOGOUT_PATH",
		Short:   "Path of the logout endpoint",
		Type:    String,
		Default: "",
	},

	// Routing settings
	{
		Name:    "ROUTES_PUBLIC",
		Short:   "Path prefixes reachable without a session",
		Type:    StringSlice,
		Default: []string{},
	},
	{
		Name:    "ROUTES_PROTECTED",
		Short:   "Path prefixes that require a session",
		Type:    StringSlice,
		Default: []string{"/"},
	},

	// Observability settings
	{
		Name:    "LOG_LEVEL",
		Short:   "Minimum log level to emit",
		Type:    String,
		Default: "info",
	},
}
