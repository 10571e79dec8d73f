// Package panel holds the navigation state of the tool layout: exactly one
// panel is active at any time.
package panel

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/workbench/pkg/domain"
)

// Panel identifiers, in sidebar order.
const (
	WordCounter       = "word-counter"
	CaseConverter     = "case-converter"
	TextToPDF         = "text-to-pdf"
	JPGToPNG          = "jpg-to-png"
	PNGToJPG          = "png-to-jpg"
	UnitConverter     = "unit-converter"
	BMICalculator     = "bmi-calculator"
	AgeCalculator     = "age-calculator"
	PasswordGenerator = "password-generator"
	URLEncoder        = "url-encoder"
	Base64Encoder     = "base64-encoder"
	JSONFormatter     = "json-formatter"
	QRGenerator       = "qr-generator"
	TextToImage       = "text-to-image"

	Default = WordCounter
)

var layout = []string{
	WordCounter, CaseConverter, TextToPDF, JPGToPNG, PNGToJPG, UnitConverter,
	BMICalculator, AgeCalculator, PasswordGenerator, URLEncoder, Base64Encoder,
	JSONFormatter, QRGenerator, TextToImage,
}

// Layout returns the panel identifiers in sidebar order.
func Layout() []string {
	return slices.Clone(layout)
}

// Known reports whether id is a panel of the layout.
func Known(id string) bool {
	return slices.Contains(layout, id)
}

// Controller tracks the active panel. It is safe for concurrent use.
type Controller struct {
	mu     sync.RWMutex
	active string
	hooks  domain.LifecycleHooks
	now    func() time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithInitial sets the panel active at start. Unknown ids keep the default.
func WithInitial(id string) Option {
	return func(c *Controller) {
		if Known(id) {
			c.active = id
		}
	}
}

// WithLifecycleHooks registers callbacks fired on every panel switch.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// WithClock sets the time source of snapshots and events.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// NewController returns a controller with the default panel active.
func NewController(opts ...Option) *Controller {
	c := &Controller{active: Default, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Activate makes id the only active panel and reports whether id was accepted.
// Unknown ids are ignored and the current panel stays active.
func (c *Controller) Activate(ctx context.Context, id string) bool {
	if !Known(id) {
		return false
	}

	c.mu.Lock()
	from := c.active
	c.active = id
	c.mu.Unlock()

	if c.hooks.OnPanelSwitch != nil {
		c.hooks.OnPanelSwitch(ctx, &domain.PanelEvent{
			EventBase: domain.EventBase{Timestamp: c.now(), Type: domain.EventPanelSwitch},
			From:      from,
			To:        id,
		})
	}
	return true
}

// Active returns the active panel.
func (c *Controller) Active() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

// IsActive reports whether id is the active panel.
func (c *Controller) IsActive(id string) bool {
	return c.Active() == id
}

// Panels returns every panel with its active flag, in layout order.
func (c *Controller) Panels() []Status {
	active := c.Active()
	out := make([]Status, len(layout))
	for i, id := range layout {
		out[i] = Status{ID: id, Active: id == active}
	}
	return out
}

// Status is a panel and whether it is shown.
type Status struct {
	ID     string `json:"id"`
	Active bool   `json:"active"`
}

// Snapshot captures the controller state.
func (c *Controller) Snapshot() *domain.PanelState {
	return domain.NewPanelState(c.Active(), c.now())
}

// Restore loads a snapshot. A snapshot naming an unknown panel is rejected.
func (c *Controller) Restore(state *domain.PanelState) error {
	if state == nil || !Known(state.Active) {
		return domain.ErrUnknownPanel
	}
	c.mu.Lock()
	c.active = state.Active
	c.mu.Unlock()
	return nil
}
