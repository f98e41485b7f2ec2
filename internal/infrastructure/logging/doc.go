// Package logging provides the structured logger shared by every gateway
// subsystem.
//
// It wraps log/slog: JSON output for production, text for development,
// level filtering from config.yaml, and service/version fields stamped on
// every entry. Component returns per-subsystem child loggers so one
// gateway's stream stays filterable by concern.
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// Usage:
//
//	log := logging.New(cfg.Logging, version)
//	syncLog := log.Component("sync")
//	syncLog.Info("appliance registered", "appliance_id", "wm-1")
//
// Never log tokens, credentials or full state documents at info level.
package logging
