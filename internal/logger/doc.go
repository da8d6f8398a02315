// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level configuration and parsing utilities,
//   - key-value helpers (DebugKV, InfoKV, WarnKV, ErrorKV).
//
// Services accept a context and extract the logger from it, so every log line
// emitted while publishing carries the name of the step that produced it.
package logger
