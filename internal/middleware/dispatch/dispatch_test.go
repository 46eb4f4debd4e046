package dispatch

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize_OneRequestAtATime(t *testing.T) {
	var d Dispatcher
	var inFlight, peak int32

	h := d.Serialize(func(c echo.Context) error {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return c.NoContent(http.StatusNoContent)
	})

	e := echo.New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
			assert.NoError(t, h(c))
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), atomic.LoadInt32(&peak))
}

func TestSerialize_PropagatesError(t *testing.T) {
	var d Dispatcher
	h := d.Serialize(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "nope")
	})

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	err := h(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusTeapot, he.Code)

	// lock released after an error
	ok := d.mu.TryLock()
	require.True(t, ok)
	d.mu.Unlock()
}
