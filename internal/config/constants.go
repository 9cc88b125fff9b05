package config

import "time"

// Default values
const (
	DefaultGraniteURL     = "https://us-south.ml.cloud.ibm.com"
	DefaultIAMURL         = "https://iam.cloud.ibm.com/identity/token"
	DefaultModelID        = "ibm/granite-13b-instruct-v2"
	DefaultAdvisorTimeout = 60 * time.Second
	DefaultLogLevel       = "info"

	appDirName = "gighub"
)

// Environment variable names.
const (
	EnvAPIKey           = "IBM_GRANITE_API_KEY"
	EnvURL              = "IBM_GRANITE_URL"
	EnvProjectID        = "IBM_GRANITE_PROJECT_ID"
	EnvModelID          = "IBM_GRANITE_MODEL_ID"
	EnvIAMURL           = "IBM_IAM_URL"
	EnvAdvisorTimeout   = "ADVISOR_TIMEOUT"
	EnvDatabasePath     = "DATABASE_PATH"
	EnvSampleExportPath = "SAMPLE_EXPORT_PATH"
	EnvLogPath          = "LOG_PATH"
	EnvLogLevel         = "LOG_LEVEL"
	EnvWatchDataFile    = "WATCH_DATA_FILE"
	EnvDesktopNotify    = "DESKTOP_NOTIFY"
)
