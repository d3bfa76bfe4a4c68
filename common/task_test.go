package common

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mailru/easyjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/grafana/xk6-abtest/api"
	"github.com/grafana/xk6-abtest/dom"
)

// memTransport answers every request in memory.
type memTransport struct {
	mu    sync.Mutex
	posts []string
}

func (m *memTransport) Post(
	ctx context.Context, spanName, url string, body easyjson.Marshaler, out easyjson.Unmarshaler,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.posts = append(m.posts, spanName)
	m.mu.Unlock()

	if out == nil {
		return nil
	}
	return easyjson.Unmarshal([]byte(`{"variantId":"A"}`), out)
}

func TestTask(t *testing.T) {
	t.Parallel()

	t.Run("pending", func(t *testing.T) {
		t.Parallel()

		task := newTask[int]()
		_, done, _ := task.Result()
		assert.False(t, done)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := task.Wait(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("resolves_once", func(t *testing.T) {
		t.Parallel()

		task := newTask[int]()
		task.resolve(1, nil)
		task.resolve(2, errors.New("late"))

		v, err := task.Wait(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, v)

		v, done, err := task.Result()
		assert.True(t, done)
		assert.NoError(t, err)
		assert.Equal(t, 1, v)
	})

	t.Run("resolved", func(t *testing.T) {
		t.Parallel()

		task := resolvedTask("", ErrNotInitialized)
		select {
		case <-task.Done():
		default:
			t.Fatal("task is not resolved")
		}
		_, err := task.Wait(context.Background())
		assert.ErrorIs(t, err, ErrNotInitialized)
	})
}

// TestSDKNoGoroutineLeak must not run in parallel: it checks every
// goroutine of the test binary.
func TestSDKNoGoroutineLeak(t *testing.T) {
	defer goleak.VerifyNone(t)

	doc := dom.NewDocument(nil, api.ReadyStateComplete)
	transport := &memTransport{}
	opts := NewOptions()
	opts.TestID = "home"

	sdk, err := Activate(context.Background(), opts, doc, transport, nil)
	require.NoError(t, err)
	require.NoError(t, sdk.Wait(context.Background()))

	for i := 0; i < 10; i++ {
		sdk.ReportClick(context.Background(), "Buy")
	}
	require.NoError(t, sdk.Wait(context.Background()))

	transport.mu.Lock()
	defer transport.mu.Unlock()
	assert.Len(t, transport.posts, 11)
}
