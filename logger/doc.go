// Package logger provides structured logging for pipekit
// using zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers with structured fields. Child process exit
// diagnostics are emitted through this package on the error stream.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.NewDefault("pipekit").WithComponent("proc")
//	log.Info("process exited", logger.Fields(logger.FieldExitCode, 0))
package logger
