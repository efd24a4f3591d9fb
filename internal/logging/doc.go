// Package logging provides a simple leveled logging interface for the
// gallery sorter, backed by zerolog.
//
// It supports the following log levels:
//   - DEBUG: Verbose debugging information (recomputations, override adoption)
//   - INFO: General operational messages
//   - WARN: Warning conditions (override store failures)
//   - ERROR: Error conditions
//   - FATAL: Fatal errors that terminate the application
//
// The log level is read from the DEBUG and LOG_LEVEL environment variables on
// first use and can be replaced with Init, which also selects console or JSON
// output.
package logging
