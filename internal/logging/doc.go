// Package logging provides structured logging for cellery-dev.
//
// It wraps Go's log/slog package to write JSON-formatted logs to a file in
// the configured log directory:
//
//	logger, err := logging.NewLogger("/path/to/logs", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	buildLogger := logger.WithAction("build")
//	buildLogger.Info("command dispatched", "terminal", "Cellery Build")
//
// Output:
//
//	{"time":"...","level":"INFO","msg":"command dispatched","action":"build","terminal":"Cellery Build"}
//
// Child loggers created with [Logger.With] or [Logger.WithAction] share the
// parent's writer. Use [NopLogger] in tests or when logging is disabled.
//
// Configuration:
//
//	logging:
//	  enabled: true
//	  level: info
//	  dir: ~/.config/cellery-dev/logs
package logging
