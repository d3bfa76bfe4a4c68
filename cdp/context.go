package cdp

import (
	"context"

	"github.com/chromedp/cdproto/target"
)

type ctxKey int

const (
	ctxKeySessionID ctxKey = iota
)

// WithSessionID routes the CDP messages sent with ctx to the target
// attached as sessionID.
func WithSessionID(ctx context.Context, sessionID target.SessionID) context.Context {
	return context.WithValue(ctx, ctxKeySessionID, sessionID)
}

// GetSessionID returns the session ID carried by ctx, or an empty ID for
// the browser target.
func GetSessionID(ctx context.Context) target.SessionID {
	if sid, ok := ctx.Value(ctxKeySessionID).(target.SessionID); ok {
		return sid
	}
	return ""
}
