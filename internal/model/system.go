package model

// VersionInfo contains build and schema information for the application.
type VersionInfo struct {
	AppVersion       string  `json:"app_version"`
	Commit           string  `json:"commit"`
	DbVersion        string  `json:"db_version"`
	MigrationNeeded  bool    `json:"migration_needed"`
	MigrationMessage *string `json:"migration_message,omitempty"`
}
