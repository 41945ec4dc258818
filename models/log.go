package models

import (
	"time"
)

// RequestLog resume uma requisição HTTP para o log estruturado
type RequestLog struct {
	RequestID    string
	Method       string
	Path         string
	StatusCode   int
	ResponseTime time.Duration
	UserAgent    string
	IP           string
	Body         string
	Query        string
	Username     string
	LogLevel     string
	Environment  string
}

// Constantes para níveis de log
const (
	LogLevelInfo    = "info"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
	LogLevelDebug   = "debug"
	LogLevelSuccess = "success"
)

// Constantes para ambientes
const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
	EnvironmentTesting     = "testing"
)
