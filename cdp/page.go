package cdp

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/cdproto"
	cdppage "github.com/chromedp/cdproto/page"
	cdpruntime "github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/cdproto/target"
	"github.com/mailru/easyjson"
	"github.com/mailru/easyjson/jlexer"

	"github.com/grafana/xk6-abtest/api"
	"github.com/grafana/xk6-abtest/common"
	"github.com/grafana/xk6-abtest/common/js"
)

// BindingName is the page function the click listener reports through.
const BindingName = "__abtestClick"

var _ api.Document = &Page{}

// Page is an api.Document backed by a browser tab.
type Page struct {
	client  *Client
	ctx     context.Context
	cancel  context.CancelFunc
	logger  *common.Logger
	browser string // browser context ID owning the tab, if created by OpenPage

	mu         sync.Mutex
	listeners  []api.ClickListener
	readyFired bool
	readyFns   []func()

	events      <-chan *Event
	unsubscribe func()
	loopDone    chan struct{}
}

// OpenPage creates a tab in a fresh browser context, attaches the SDK
// hooks and navigates it to url.
func OpenPage(ctx context.Context, client *Client, url string, logger *common.Logger) (*Page, error) {
	bctxID, err := client.Target.CreateBrowserContext(ctx, true)
	if err != nil {
		return nil, err
	}
	targetID, err := client.Target.CreateTarget(ctx, "about:blank", bctxID)
	if err != nil {
		return nil, err
	}
	sessionID, err := client.Target.AttachToTarget(ctx, targetID)
	if err != nil {
		return nil, err
	}

	p, err := NewPage(ctx, client, sessionID, logger)
	if err != nil {
		return nil, err
	}
	p.browser = bctxID

	if _, err := client.Page.Navigate(p.ctx, url, ""); err != nil {
		_ = p.Close()
		return nil, err
	}

	return p, nil
}

// NewPage attaches the SDK hooks to the target attached as sessionID:
// it enables the Runtime and Page domains, adds the click binding and
// installs the click listener in the current and every future document.
func NewPage(
	ctx context.Context, client *Client, sessionID target.SessionID, logger *common.Logger,
) (*Page, error) {
	if logger == nil {
		logger = common.NewLogger(common.NullLogger(), nil)
	}

	pctx, cancel := context.WithCancel(WithSessionID(ctx, sessionID))
	p := &Page{
		client:   client,
		ctx:      pctx,
		cancel:   cancel,
		logger:   logger,
		loopDone: make(chan struct{}),
	}
	p.events, p.unsubscribe = client.Subscribe(pctx,
		cdproto.EventRuntimeBindingCalled,
		cdproto.EventPageDomContentEventFired,
	)

	if err := p.attach(); err != nil {
		p.unsubscribe()
		cancel()
		return nil, err
	}
	go p.loop()

	return p, nil
}

func (p *Page) attach() error {
	if err := p.client.Runtime.Enable(p.ctx); err != nil {
		return err
	}
	if err := p.client.Page.Enable(p.ctx); err != nil {
		return err
	}
	if err := p.client.Runtime.AddBinding(p.ctx, BindingName); err != nil {
		return err
	}
	if err := p.client.Page.AddScriptToEvaluateOnNewDocument(p.ctx, js.ClickListenerScript); err != nil {
		return err
	}
	if _, err := p.client.Runtime.Evaluate(p.ctx, js.ClickListenerScript); err != nil {
		return fmt.Errorf("installing click listener: %w", err)
	}

	return nil
}

func (p *Page) loop() {
	defer close(p.loopDone)

	for {
		select {
		case evt, ok := <-p.events:
			if !ok {
				return
			}
			p.onEvent(evt)
		case <-p.ctx.Done():
			return
		case <-p.client.Done():
			return
		}
	}
}

func (p *Page) onEvent(evt *Event) {
	switch ev := evt.Data.(type) {
	case *cdpruntime.EventBindingCalled:
		if ev.Name != BindingName {
			return
		}
		node, err := decodeClick(ev.Payload)
		if err != nil {
			p.logger.Errorf("cdp:Page", "decoding click payload: %v", err)
			return
		}
		p.dispatchClick(node)
	case *cdppage.EventDomContentEventFired:
		p.fireReady()
	}
}

func (p *Page) dispatchClick(node api.Node) {
	p.mu.Lock()
	listeners := append([]api.ClickListener{}, p.listeners...)
	p.mu.Unlock()

	for _, fn := range listeners {
		fn(node)
	}
}

func (p *Page) fireReady() {
	p.mu.Lock()
	if p.readyFired {
		p.mu.Unlock()
		return
	}
	p.readyFired = true
	fns := p.readyFns
	p.readyFns = nil
	p.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// ReadyState implements api.Document. A tab whose state cannot be read
// is reported as loading, unless Page.domContentEventFired was already
// seen, in which case it is at least interactive.
func (p *Page) ReadyState() api.ReadyState {
	state := p.evaluateReadyState()
	if state.Ready() {
		return state
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.readyFired {
		return api.ReadyStateInteractive
	}
	return state
}

func (p *Page) evaluateReadyState() api.ReadyState {
	raw, err := p.client.Runtime.Evaluate(p.ctx, "document.readyState")
	if err != nil {
		p.logger.Debugf("cdp:Page:ReadyState", "reading document.readyState: %v", err)
		return api.ReadyStateLoading
	}
	lex := jlexer.Lexer{Data: raw}
	state := lex.String()
	if err := lex.Error(); err != nil {
		p.logger.Debugf("cdp:Page:ReadyState", "decoding document.readyState: %v", err)
		return api.ReadyStateLoading
	}

	return api.ReadyState(state)
}

// OnDOMContentLoaded implements api.Document. Callbacks run on the next
// Page.domContentEventFired event. The event can arrive while a caller
// is between ReadyState and OnDOMContentLoaded, so a callback registered
// after it fired runs immediately.
func (p *Page) OnDOMContentLoaded(fn func()) {
	p.mu.Lock()
	if p.readyFired {
		p.mu.Unlock()
		fn()
		return
	}
	p.readyFns = append(p.readyFns, fn)
	p.mu.Unlock()
}

// AddClickListener implements api.Document.
func (p *Page) AddClickListener(fn api.ClickListener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

// PublishState copies snap into window.testeab in the tab.
func (p *Page) PublishState(ctx context.Context, snap common.StateSnapshot) error {
	buf, err := easyjson.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	expr := "(" + js.StatePublishScript + ")(" + string(buf) + ")"
	if _, err := p.client.Runtime.Evaluate(WithSessionID(ctx, GetSessionID(p.ctx)), expr); err != nil {
		return fmt.Errorf("publishing state: %w", err)
	}

	return nil
}

// Close detaches the page. A tab opened with OpenPage is closed with its
// browser context.
func (p *Page) Close() error {
	p.cancel()
	<-p.loopDone
	p.unsubscribe()

	if p.browser == "" {
		return nil
	}
	return p.client.Target.DisposeBrowserContext(context.Background(), p.browser)
}
