// Package logger provides structured logging for the scaffolding engine,
// built on zerolog.
//
// A single global logger is initialized from configuration at startup;
// packages obtain component-tagged sub-loggers via WithComponent. The
// console format prints compact [DBG]/[INF]/[WRN]/[ERR] level tags suited
// to interactive CLI runs, while the json format is available for CI logs.
package logger
