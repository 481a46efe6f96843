package logger

import (
	"sync"

	"github.com/rs/zerolog"
)

// Components the SDK logs under.
const (
	ComponentDispatcher = "dispatcher"
	ComponentAudit      = "audit"
	ComponentHTTPClient = "httpclient"
	ComponentConfig     = "config"
)

var components = struct {
	sync.RWMutex
	loggers map[string]*Logger
}{loggers: make(map[string]*Logger)}

// Register makes l the logger returned by Get(name).
func Register(name string, l *Logger) {
	components.Lock()
	defer components.Unlock()
	components.loggers[name] = l
}

// Get returns the logger registered under name, or the global logger tagged
// with name as its component.
func Get(name string) *Logger {
	components.RLock()
	l, ok := components.loggers[name]
	components.RUnlock()
	if ok {
		return l
	}
	return GetGlobalLogger().WithComponent(name)
}

// registerLevels replaces every registration with one logger per entry of
// levels, derived from base. Entries with an unknown level are skipped.
func registerLevels(base *Logger, levels map[string]string) {
	components.Lock()
	defer components.Unlock()
	clear(components.loggers)
	for name, lvl := range levels {
		level, err := zerolog.ParseLevel(lvl)
		if err != nil || lvl == "" {
			continue
		}
		components.loggers[name] = base.WithComponent(name).withLevel(level)
	}
}
