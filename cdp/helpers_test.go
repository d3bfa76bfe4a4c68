package cdp

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/chromedp/cdproto"
	cdpruntime "github.com/chromedp/cdproto/runtime"
	"github.com/gorilla/websocket"
	"github.com/mailru/easyjson"
	"github.com/mailru/easyjson/jlexer"
	"github.com/stretchr/testify/require"
)

// fakeBrowser is a DevTools endpoint answering the commands the page
// binding sends.
type fakeBrowser struct {
	srv        *httptest.Server
	readyState string

	mu          sync.Mutex
	conn        *websocket.Conn
	methods     []string
	bindings    []string
	expressions []string
	errors      map[string]string
	connected   chan struct{}
}

func newFakeBrowser(t *testing.T, readyState string) *fakeBrowser {
	t.Helper()

	fb := &fakeBrowser{
		readyState: readyState,
		errors:     make(map[string]string),
		connected:  make(chan struct{}),
	}
	upgrader := websocket.Upgrader{}
	fb.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		fb.mu.Lock()
		fb.conn = conn
		fb.mu.Unlock()
		close(fb.connected)
		fb.serve(conn)
	}))
	t.Cleanup(fb.srv.Close)

	return fb
}

func (fb *fakeBrowser) url() string {
	return "ws" + strings.TrimPrefix(fb.srv.URL, "http")
}

func (fb *fakeBrowser) failWith(method, message string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.errors[method] = message
}

func (fb *fakeBrowser) serve(conn *websocket.Conn) {
	for {
		_, buf, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg cdproto.Message
		lex := jlexer.Lexer{Data: buf}
		msg.UnmarshalEasyJSON(&lex)
		if lex.Error() != nil {
			return
		}
		fb.reply(&msg)
	}
}

func (fb *fakeBrowser) reply(msg *cdproto.Message) {
	fb.mu.Lock()
	fb.methods = append(fb.methods, string(msg.Method))
	errMsg, fail := fb.errors[string(msg.Method)]
	fb.mu.Unlock()

	if fail {
		fb.write(fmt.Sprintf(`{"id":%d,"sessionId":%q,"error":{"code":-32000,"message":%q}}`,
			msg.ID, msg.SessionID, errMsg))
		return
	}

	result := `{}`
	switch msg.Method {
	case cdproto.CommandTargetCreateBrowserContext:
		result = `{"browserContextId":"CTX1"}`
	case cdproto.CommandTargetCreateTarget:
		result = `{"targetId":"T1"}`
	case cdproto.CommandTargetAttachToTarget:
		result = `{"sessionId":"S1"}`
	case cdproto.CommandPageAddScriptToEvaluateOnNewDocument:
		result = `{"identifier":"1"}`
	case cdproto.CommandPageNavigate:
		result = `{"frameId":"F1","loaderId":"L1"}`
	case cdproto.CommandBrowserGetVersion:
		result = `{"protocolVersion":"1.3","product":"HeadlessChrome/120.0","revision":"r1","userAgent":"UA","jsVersion":"12.0"}`
	case cdproto.CommandRuntimeAddBinding:
		var p cdpruntime.AddBindingParams
		_ = easyjson.Unmarshal(msg.Params, &p)
		fb.mu.Lock()
		fb.bindings = append(fb.bindings, p.Name)
		fb.mu.Unlock()
	case cdproto.CommandRuntimeEvaluate:
		var p cdpruntime.EvaluateParams
		_ = easyjson.Unmarshal(msg.Params, &p)
		fb.mu.Lock()
		fb.expressions = append(fb.expressions, p.Expression)
		fb.mu.Unlock()
		result = `{"result":{"type":"undefined"}}`
		if p.Expression == "document.readyState" {
			result = fmt.Sprintf(`{"result":{"type":"string","value":%q}}`, fb.readyState)
		}
	}
	fb.write(fmt.Sprintf(`{"id":%d,"sessionId":%q,"result":%s}`, msg.ID, msg.SessionID, result))
}

func (fb *fakeBrowser) write(s string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	_ = fb.conn.WriteMessage(websocket.TextMessage, []byte(s))
}

// emit sends an event for the session.
func (fb *fakeBrowser) emit(t *testing.T, method, sessionID, params string) {
	t.Helper()

	<-fb.connected
	fb.write(fmt.Sprintf(`{"method":%q,"sessionId":%q,"params":%s}`, method, sessionID, params))
}

// dropConnection closes the websocket from the browser side.
func (fb *fakeBrowser) dropConnection(t *testing.T) {
	t.Helper()

	<-fb.connected
	fb.mu.Lock()
	defer fb.mu.Unlock()
	require.NoError(t, fb.conn.Close())
}

func (fb *fakeBrowser) seen() (methods, bindings, expressions []string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]string{}, fb.methods...),
		append([]string{}, fb.bindings...),
		append([]string{}, fb.expressions...)
}

// bindingParams encodes a Runtime.bindingCalled event carrying payload.
func bindingParams(t *testing.T, payload string) string {
	t.Helper()

	buf, err := easyjson.Marshal(&cdpruntime.EventBindingCalled{
		Name:               BindingName,
		Payload:            payload,
		ExecutionContextID: 1,
	})
	require.NoError(t, err)
	return string(buf)
}
