// Package logger provides leveled logging for jass CLI commands.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Output is formatted with semantic prefixes and colors, and always
// written to stderr so that envelope and plaintext bytes on stdout stay
// clean for pipelines.
//
// # Verbosity Levels
//
// Logging behavior is controlled by two flags:
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows all messages including debug details
//
// Without flags, only warnings are shown. Errors are not logged here:
// commands return them and main reports them once.
//
// # Log Methods
//
//	Logger.Infof()  // Shown with --verbose or --debug
//	Logger.Debugf() // Shown only with --debug
//	Logger.Warnf()  // Always shown
//
// # Usage
//
// Create a logger with the desired verbosity:
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("normalized %d keys", count)
//
// Commands create a logger in their PersistentPreRun and pass it to
// internal functions.
package logger
