// Package cdp drives a page over the Chrome DevTools Protocol and exposes
// it to the SDK as an api.Document.
package cdp

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/chromedp/cdproto"
	"github.com/chromedp/cdproto/cdp"
	"github.com/mailru/easyjson"

	"github.com/grafana/xk6-abtest/cdp/domains"
	"github.com/grafana/xk6-abtest/common"
)

// ErrClientClosed is returned by Execute once the connection is gone.
var ErrClientClosed = errors.New("CDP connection closed")

var _ cdp.Executor = &Client{}

// Client manages CDP communication with the browser.
type Client struct {
	logger *common.Logger

	Browser domains.Browser
	Page    domains.Page
	Runtime domains.Runtime
	Target  domains.Target

	conn    *connection
	wsURL   string
	msgID   int64
	watcher *eventWatcher

	pendingMu sync.Mutex
	pending   map[int64]chan *cdproto.Message

	done      chan struct{}
	closeOnce sync.Once
	err       error
}

// Connect establishes a CDP connection to the browser exposing its API
// at wsURL.
func Connect(ctx context.Context, wsURL string, logger *common.Logger) (*Client, error) {
	if logger == nil {
		logger = common.NewLogger(common.NullLogger(), nil)
	}
	conn, err := dial(ctx, wsURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		logger:  logger,
		conn:    conn,
		wsURL:   wsURL,
		watcher: newEventWatcher(logger),
		pending: make(map[int64]chan *cdproto.Message),
		done:    make(chan struct{}),
	}
	c.Browser = domains.NewBrowser(c)
	c.Page = domains.NewPage(c)
	c.Runtime = domains.NewRuntime(c)
	c.Target = domains.NewTarget(c)

	logger.Infof("cdp:Connect", "established CDP connection to %q", wsURL)
	go c.recvLoop()

	return c, nil
}

// Execute implements cdp.Executor and performs a synchronous send and
// receive. The message targets the session carried by ctx, if any.
func (c *Client) Execute(
	ctx context.Context, method string, params easyjson.Marshaler, res easyjson.Unmarshaler,
) error {
	c.logger.Debugf("cdp:Execute", "wsURL:%q method:%q", c.wsURL, method)

	buf, err := marshalParams(params)
	if err != nil {
		return err
	}
	msg := &cdproto.Message{
		ID:        atomic.AddInt64(&c.msgID, 1),
		SessionID: GetSessionID(ctx),
		Method:    cdproto.MethodType(method),
		Params:    buf,
	}

	recvCh := make(chan *cdproto.Message, 1)
	c.pendingMu.Lock()
	c.pending[msg.ID] = recvCh
	c.pendingMu.Unlock()
	defer func() {
		c.pendingMu.Lock()
		delete(c.pending, msg.ID)
		c.pendingMu.Unlock()
	}()

	select {
	case <-c.done:
		return c.closedErr()
	default:
	}
	if err := c.conn.writeMessage(msg); err != nil {
		return fmt.Errorf("sending %s: %w", method, err)
	}

	select {
	case reply := <-recvCh:
		if reply.Error != nil {
			return fmt.Errorf("%s: %w", method, reply.Error)
		}
		if res != nil && len(reply.Result) > 0 {
			if err := easyjson.Unmarshal(reply.Result, res); err != nil {
				return fmt.Errorf("decoding %s result: %w", method, err)
			}
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for %s: %w", method, ctx.Err())
	case <-c.done:
		return c.closedErr()
	}
}

// Subscribe returns a channel receiving the given events of the session
// carried by ctx and a function that unsubscribes and closes the channel.
func (c *Client) Subscribe(ctx context.Context, events ...cdproto.MethodType) (<-chan *Event, func()) {
	return c.watcher.subscribe(GetSessionID(ctx), events...)
}

// Done is closed when the connection ends.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close closes the connection to the browser.
func (c *Client) Close() error {
	err := c.conn.close()
	c.shutdown(nil)
	return err
}

func (c *Client) shutdown(err error) {
	c.closeOnce.Do(func() {
		c.err = err
		close(c.done)
	})
}

func (c *Client) closedErr() error {
	if c.err != nil {
		return fmt.Errorf("%w: %v", ErrClientClosed, c.err)
	}
	return ErrClientClosed
}

func (c *Client) recvLoop() {
	for {
		msg, err := c.conn.readMessage()
		if err != nil {
			select {
			case <-c.done:
			default:
				if !isClosed(err) {
					c.logger.Errorf("cdp:recvLoop", "wsURL:%q err:%v", c.wsURL, err)
				}
			}
			c.shutdown(err)
			return
		}

		switch {
		case msg.Method != "":
			evt, err := cdproto.UnmarshalMessage(msg)
			if err != nil {
				c.logger.Debugf("cdp:recvLoop", "skipping %s event: %v", msg.Method, err)
				continue
			}
			c.watcher.notify(&Event{
				Name:      msg.Method,
				SessionID: msg.SessionID,
				Data:      evt,
			})
		case msg.ID > 0:
			c.pendingMu.Lock()
			ch, ok := c.pending[msg.ID]
			c.pendingMu.Unlock()
			if !ok {
				c.logger.Debugf("cdp:recvLoop", "no caller waiting for message %d", msg.ID)
				continue
			}
			ch <- msg
		default:
			c.logger.Errorf("cdp:recvLoop", "ignoring malformed CDP message without id or method")
		}
	}
}
