package constants

import "time"

// Application constants
const (
	ApplicationName  = "fileref"
	ApplicationTitle = "File reference utility"
)

// Configuration file names, in lookup order
const (
	ConfigFileJSON = "config.json"
	ConfigFileYAML = "config.yaml"
)

// SMB provider constants
const (
	SMBPort               = "445"
	DefaultSMBDialTimeout = 5 * time.Second
	KeyringServiceName    = "fileref.smb"
)

// File size constants
const (
	FileSizeUnit  = 1024
	FileSizeUnits = "KMGTPE"
)

// Logging defaults
const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)
