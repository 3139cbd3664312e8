// Package app holds identifiers shared by every package of the importer.
package app

// Name is the application name, used for the binary, the config directory
// and the default run log file.
const Name = "jira-worklog-import"
