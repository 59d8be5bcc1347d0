package gologger

import (
	"strings"

	glog "github.com/goliatone/go-logger/glog"
)

const DefaultName = "cuenca"

// Resolve uses deterministic precedence provider > logger > nop. When a
// provider is available the named logger it returns wins.
func Resolve(name string, provider glog.LoggerProvider, logger glog.Logger) (glog.LoggerProvider, glog.Logger) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}
	resolvedProvider, resolvedLogger := glog.Resolve(name, provider, logger)
	resolvedLogger = glog.Ensure(resolvedLogger)
	if resolvedProvider != nil {
		if named := resolvedProvider.GetLogger(name); named != nil {
			resolvedLogger = glog.Ensure(named)
		}
	}
	return resolvedProvider, resolvedLogger
}
