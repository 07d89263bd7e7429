package lazy

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func TestLoadCachesSuccess(t *testing.T) {
	var calls atomic.Int32
	c := New("hello", func(context.Context) (templ.Component, error) {
		calls.Add(1)
		return text("hi"), nil
	})
	assert.False(t, c.Loaded())

	for i := 0; i < 3; i++ {
		var b strings.Builder
		require.NoError(t, c.Render(context.Background(), &b))
		assert.Equal(t, "hi", b.String())
	}
	assert.True(t, c.Loaded())
	assert.Equal(t, int32(1), calls.Load())
}

func TestConcurrentFirstLoadsShareOneCall(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	c := New("slow", func(context.Context) (templ.Component, error) {
		calls.Add(1)
		<-release
		return text("ok"), nil
	})

	const callers = 8
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Load(context.Background())
			errs <- err
		}()
	}
	// Let every caller reach the shared load before it completes.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestFailedLoadIsNotCached(t *testing.T) {
	var calls atomic.Int32
	boom := errors.New("chunk missing")
	c := New("flaky", func(context.Context) (templ.Component, error) {
		if calls.Add(1) == 1 {
			return nil, boom
		}
		return text("recovered"), nil
	})

	_, err := c.Load(context.Background())
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "flaky", le.Name)
	assert.ErrorIs(t, err, boom)
	assert.False(t, c.Loaded())

	var b strings.Builder
	require.NoError(t, c.Render(context.Background(), &b))
	assert.Equal(t, "recovered", b.String())
	assert.Equal(t, int32(2), calls.Load())
}

func TestLoaderPanicBecomesError(t *testing.T) {
	c := New("panicky", func(context.Context) (templ.Component, error) {
		panic("kaboom")
	})
	_, err := c.Load(context.Background())
	assert.ErrorContains(t, err, "kaboom")
	assert.False(t, c.Loaded())
}

func TestNilComponentIsAnError(t *testing.T) {
	c := New("empty", func(context.Context) (templ.Component, error) { return nil, nil })
	_, err := c.Load(context.Background())
	assert.Error(t, err)
}

func TestLoadHonoursCallerContext(t *testing.T) {
	release := make(chan struct{})
	c := New("stuck", func(context.Context) (templ.Component, error) {
		<-release
		return text("late"), nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := c.Load(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// The shared load keeps going and is cached once it finishes.
	close(release)
	require.Eventually(t, c.Loaded, time.Second, 5*time.Millisecond)
}

func TestPreload(t *testing.T) {
	a := New("a", func(context.Context) (templ.Component, error) { return text("a"), nil })
	b := New("b", func(context.Context) (templ.Component, error) { return text("b"), nil })
	require.NoError(t, Preload(context.Background(), a, b, nil))
	assert.True(t, a.Loaded())
	assert.True(t, b.Loaded())

	bad := New("bad", func(context.Context) (templ.Component, error) { return nil, errors.New("nope") })
	err := Preload(context.Background(), New("c", func(context.Context) (templ.Component, error) { return text("c"), nil }), bad)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "bad", le.Name)
}

func TestRegistryMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := NewRegistry(reg)
	require.NoError(t, err)

	fail := true
	c := r.New("metered", func(context.Context) (templ.Component, error) {
		if fail {
			fail = false
			return nil, errors.New("first try fails")
		}
		return text("ok"), nil
	})

	_, err = c.Load(context.Background())
	require.Error(t, err)
	_, err = c.Load(context.Background())
	require.NoError(t, err)
	_, err = c.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.loads.WithLabelValues("metered", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.loads.WithLabelValues("metered", "success")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.latency))

	_, err = NewRegistry(reg)
	assert.Error(t, err, "metrics are registered once per registry")
}
