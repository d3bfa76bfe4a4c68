package common

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"

	"github.com/mailru/easyjson"
	"github.com/mailru/easyjson/jwriter"
	"github.com/oxtoacart/bpool"
	"github.com/pkg/errors"

	"github.com/grafana/xk6-abtest/trace"
)

const bufferPoolSize = 32

// Transport posts JSON bodies to the experiment API.
type Transport interface {
	// Post sends body to url and decodes the response into out, unless
	// out is nil. A non-success status is reported as *StatusError.
	Post(ctx context.Context, spanName, url string, body easyjson.Marshaler, out easyjson.Unmarshaler) error
}

var _ Transport = &HTTPTransport{}

// HTTPTransport is a Transport over net/http.
type HTTPTransport struct {
	client *http.Client
	pool   *bpool.BufferPool
	tracer *trace.Tracer
	logger *Logger
}

// NewHTTPTransport returns a transport using client. Nil arguments get
// defaults.
func NewHTTPTransport(client *http.Client, tracer *trace.Tracer, logger *Logger) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	if tracer == nil {
		tracer = trace.NewNoopTracer()
	}
	if logger == nil {
		logger = NewLogger(NullLogger(), nil)
	}
	return &HTTPTransport{
		client: client,
		pool:   bpool.NewBufferPool(bufferPoolSize),
		tracer: tracer,
		logger: logger,
	}
}

// Post implements Transport.
func (t *HTTPTransport) Post(
	ctx context.Context, spanName, url string, body easyjson.Marshaler, out easyjson.Unmarshaler,
) (err error) {
	ctx, span := t.tracer.TraceRequest(ctx, spanName, http.MethodPost, url)
	defer func() { trace.End(span, err) }()

	buf := t.pool.Get()
	defer t.pool.Put(buf)

	var w jwriter.Writer
	body.MarshalEasyJSON(&w)
	if w.Error != nil {
		return fmt.Errorf("encoding request body for %s: %w", url, w.Error)
	}
	if _, err := w.DumpTo(buf); err != nil {
		return fmt.Errorf("buffering request body for %s: %w", url, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, buf)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", url, err)
	}
	req.Header.Set("Content-Type", "application/json")

	t.logger.Debugf("HTTPTransport:Post", "url:%q", url)
	resp, err := t.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "posting to %s", url)
	}
	defer func() {
		// drain so the connection can be reused
		_, _ = io.Copy(ioutil.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{URL: url, Code: resp.StatusCode}
	}
	if out == nil {
		return nil
	}

	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "reading response from %s", url)
	}
	if err := easyjson.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", url, err)
	}

	return nil
}
