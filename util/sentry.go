package util

import (
	"time"

	"github.com/getsentry/sentry-go"
)

var sentryEnabled bool

// InitSentry enables error reporting when dsn is set.
func InitSentry(dsn, environment, release string) error {
	if dsn == "" {
		return nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
		Release:     release,
	})
	if err != nil {
		return err
	}
	sentryEnabled = true
	return nil
}

// CaptureError reports err with tags. No-op unless InitSentry succeeded.
func CaptureError(err error, tags map[string]string) {
	if !sentryEnabled || err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		sentry.CaptureException(err)
	})
}

// FlushSentry waits up to timeout for buffered events.
func FlushSentry(timeout time.Duration) {
	if sentryEnabled {
		sentry.Flush(timeout)
	}
}
