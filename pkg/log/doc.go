/*
Package log provides structured logging for the crawler using zerolog.

The log package wraps zerolog to provide JSON-structured logging with
component-specific loggers, configurable log levels, and helper functions for
common logging patterns. All logs include timestamps and support filtering by
severity level.

# Usage

Initializing the logger:

	import "github.com/cuemby/addoncrawl/pkg/log"

	log.Init(log.Config{
		Level:      log.InfoLevel,
		JSONOutput: true,
		Output:     os.Stdout,
	})

Simple logging:

	log.Info("crawl starting")
	log.Debug("checking descriptor cache")
	log.Warn("resolver call slow")
	log.Error("resolver exited nonzero")

Component loggers:

	cacheLog := log.WithComponent("cache")
	cacheLog.Info().Msg("cache initialized")

Context loggers:

	descLog := log.WithDescriptor(d.Path)
	descLog.Info().Msg("visiting node")

	workerLog := log.WithWorker("worker-3")
	workerLog.Debug().Msg("admitted")

# Design Patterns

Global Logger Pattern:
  - Single package-level Logger instance
  - Initialized once at application start
  - Accessible from all packages without passing

Context Logger Pattern:
  - Create child loggers with context fields (component, descriptor, worker)
  - Pass context loggers to functions
  - Avoids repetitive field specification

# See Also

  - Zerolog documentation: https://github.com/rs/zerolog
*/
package log
