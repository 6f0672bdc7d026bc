package observability

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// InitSentryはDSNが空なら何もしない
func InitSentry(dsn string, environment string) error {
	if dsn == "" {
		return nil
	}

	return sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		AttachStacktrace: true,
	})
}

func FlushSentry() {
	sentry.Flush(2 * time.Second)
}
