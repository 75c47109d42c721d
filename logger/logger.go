// Package logger installs the process-wide zap logger. Call sites use
// zap.L() / zap.S() directly.
package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Init builds a production or development zap config depending on mode
// and installs it as the global logger.
func Init(mode string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(l)
	return l, nil
}
