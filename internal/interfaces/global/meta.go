// Package global
package global

import "flag"

var (
	DebugMode      = flag.Bool("debug", false, "Enable debug mode")
	ConfigFilePath = flag.String("config", "./config.json", "Path to configuration file")
)

const (
	AppVersion    = "0.3.1"
	ConfigVersion = "0.3.0"

	DefaultFilePermissions     = 0644
	DefaultDirectoryPermission = 0755

	// DocumentIdLength is the length of store-assigned record identifiers.
	DocumentIdLength = 20
)
