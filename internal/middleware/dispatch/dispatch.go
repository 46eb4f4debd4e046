// Package dispatch runs requests against the shared application state one at a
// time, in arrival order.
package dispatch

import (
	"sync"

	"github.com/labstack/echo/v4"
)

type Dispatcher struct {
	mu sync.Mutex
}

func (d *Dispatcher) Serialize(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		d.mu.Lock()
		defer d.mu.Unlock()
		return next(c)
	}
}
