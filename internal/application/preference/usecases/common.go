package usecases

import (
	"context"
	"time"
)

// writeTimeout bounds a detached write. The repository applies its own
// query timeout on top.
const writeTimeout = 10 * time.Second

// detached returns a context that survives the caller's cancellation, so a
// client disconnect cannot abort a write halfway.
func detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
}

// MetricsRecorder receives write outcomes.
type MetricsRecorder interface {
	RecordPreferenceWrite(operation, outcome string)
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
