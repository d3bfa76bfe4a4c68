package cdp

import (
	"sync"

	"github.com/chromedp/cdproto"
	"github.com/chromedp/cdproto/target"

	"github.com/grafana/xk6-abtest/common"
)

const eventBufferSize = 64

// Event is a decoded CDP event.
type Event struct {
	Name      cdproto.MethodType
	SessionID target.SessionID
	Data      interface{}
}

type subscription struct {
	sessionID target.SessionID
	ch        chan *Event
}

type eventWatcher struct {
	logger *common.Logger

	subsMu sync.RWMutex
	subs   map[cdproto.MethodType][]*subscription
}

func newEventWatcher(logger *common.Logger) *eventWatcher {
	return &eventWatcher{
		logger: logger,
		subs:   make(map[cdproto.MethodType][]*subscription),
	}
}

// subscribe returns a channel receiving events of the session and a
// function cancelling the subscription. An empty session ID receives
// the events of the browser target.
func (w *eventWatcher) subscribe(
	sessionID target.SessionID, events ...cdproto.MethodType,
) (<-chan *Event, func()) {
	sub := &subscription{
		sessionID: sessionID,
		ch:        make(chan *Event, eventBufferSize),
	}

	w.subsMu.Lock()
	for _, evt := range events {
		w.subs[evt] = append(w.subs[evt], sub)
	}
	w.subsMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			w.subsMu.Lock()
			defer w.subsMu.Unlock()
			for _, evt := range events {
				w.subs[evt] = removeSub(w.subs[evt], sub)
			}
			close(sub.ch)
		})
	}

	return sub.ch, cancel
}

func removeSub(subs []*subscription, sub *subscription) []*subscription {
	out := subs[:0]
	for _, s := range subs {
		if s != sub {
			out = append(out, s)
		}
	}
	return out
}

// notify delivers evt without blocking the read loop. Events are dropped
// for subscribers that fall behind.
func (w *eventWatcher) notify(evt *Event) {
	w.subsMu.RLock()
	defer w.subsMu.RUnlock()

	for _, sub := range w.subs[evt.Name] {
		if sub.sessionID != evt.SessionID {
			continue
		}
		select {
		case sub.ch <- evt:
		default:
			w.logger.Warnf("cdp:notify", "dropping %s event for session %q", evt.Name, evt.SessionID)
		}
	}
}
