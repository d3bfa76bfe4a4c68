package cdp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/chromedp/cdproto"
	"github.com/gorilla/websocket"
	"github.com/mailru/easyjson"
	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
)

const (
	handshakeTimeout = 10 * time.Second
	wsBufferSize     = 1 << 20
)

// connection is a websocket connection carrying CDP messages. Reads
// happen on a single goroutine; writes are serialised.
type connection struct {
	ws *websocket.Conn

	writeMu sync.Mutex
}

func dial(ctx context.Context, wsURL string) (*connection, error) {
	wd := &websocket.Dialer{
		HandshakeTimeout: handshakeTimeout,
		ReadBufferSize:   wsBufferSize,
		WriteBufferSize:  wsBufferSize,
		Proxy:            http.ProxyFromEnvironment,
	}
	ws, _, err := wd.DialContext(ctx, wsURL, http.Header{})
	if err != nil {
		return nil, fmt.Errorf("connecting to %q: %w", wsURL, err)
	}

	return &connection{ws: ws}, nil
}

func (c *connection) readMessage() (*cdproto.Message, error) {
	_, buf, err := c.ws.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("reading CDP message: %w", err)
	}

	var msg cdproto.Message
	lex := jlexer.Lexer{Data: buf}
	msg.UnmarshalEasyJSON(&lex)
	if err := lex.Error(); err != nil {
		return nil, fmt.Errorf("decoding CDP message: %w", err)
	}

	return &msg, nil
}

func (c *connection) writeMessage(msg *cdproto.Message) error {
	var w jwriter.Writer
	msg.MarshalEasyJSON(&w)
	if w.Error != nil {
		return fmt.Errorf("encoding CDP message: %w", w.Error)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	wc, err := c.ws.NextWriter(websocket.TextMessage)
	if err != nil {
		return fmt.Errorf("writing CDP message: %w", err)
	}
	if _, err := w.DumpTo(wc); err != nil {
		return fmt.Errorf("writing CDP message: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("flushing CDP message: %w", err)
	}

	return nil
}

func (c *connection) close() error {
	c.writeMu.Lock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	c.writeMu.Unlock()

	if err := c.ws.Close(); err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		return fmt.Errorf("closing CDP connection: %w", err)
	}
	return nil
}

// isClosed reports whether err is the result of a normal close.
func isClosed(err error) bool {
	return websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway)
}

func marshalParams(params easyjson.Marshaler) (easyjson.RawMessage, error) {
	if params == nil {
		return nil, nil
	}
	buf, err := easyjson.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("encoding CDP params: %w", err)
	}
	return buf, nil
}
