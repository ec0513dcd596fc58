package client

import (
	"context"
	"errors"
	"sync"
)

// State identifies which buffers are authoritative in the controller.
type State int

const (
	// StateIdle holds a scratch buffer: code being written and, after a
	// submission, its review.
	StateIdle State = iota
	// StateEditing holds the buffers of a selected history item.
	StateEditing
)

var (
	// ErrActionInFlight is returned when an action is started while another
	// one has not completed. The UI is expected to disable its controls
	// during a pending call; this guard backs that up.
	ErrActionInFlight = errors.New("another action is still in flight")
	// ErrNotIdle is returned when Submit is invoked outside the Idle state.
	ErrNotIdle = errors.New("submit is only valid in the idle state")
	// ErrNotEditing is returned when SaveEdit is invoked outside the Editing state.
	ErrNotEditing = errors.New("save is only valid while editing a history item")
)

// Controller mirrors server state for an interactive client: the editor
// buffer, the current review text, the history list and the selection. It is
// a pure state machine; all business logic lives behind the API. The server
// remains the source of truth: no local mutation happens before the server
// confirms.
type Controller struct {
	api *Client

	mu         sync.Mutex
	inFlight   bool
	state      State
	selectedID string
	code       string
	review     string
	sessions   []Session
}

// NewController creates a controller in Idle state with empty buffers.
func NewController(api *Client) *Controller {
	return &Controller{api: api, state: StateIdle}
}

func (c *Controller) State() State        { return c.state }
func (c *Controller) Code() string        { return c.code }
func (c *Controller) Review() string      { return c.review }
func (c *Controller) SelectedID() string  { return c.selectedID }
func (c *Controller) Sessions() []Session { return c.sessions }

// SetCode replaces the editor buffer. Valid in any state; typing does not
// change which session is selected.
func (c *Controller) SetCode(code string) {
	c.code = code
}

// SetReview replaces the review buffer.
func (c *Controller) SetReview(review string) {
	c.review = review
}

// New resets to Idle with empty buffers, regardless of prior state.
// Unsaved edits are discarded; that is the documented contract of the "New"
// action, not an accident.
func (c *Controller) New() {
	c.state = StateIdle
	c.selectedID = ""
	c.code = ""
	c.review = ""
}

// Submit sends the editor buffer for review. Only valid from Idle. On
// success the review buffer is filled and the history refreshed; on failure
// every buffer stays exactly as it was and the error is returned for the UI
// to surface.
func (c *Controller) Submit(ctx context.Context) error {
	if c.state != StateIdle {
		return ErrNotIdle
	}
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	result, err := c.api.SubmitReview(ctx, c.code)
	if err != nil {
		return err
	}

	c.review = result.Review
	return c.refreshHistory(ctx)
}

// Select loads a history item into the buffers and enters Editing.
func (c *Controller) Select(s Session) {
	c.state = StateEditing
	c.selectedID = s.ID
	c.code = s.Code
	c.review = s.Review
}

// SaveEdit persists the current buffers to the selected session. Only valid
// from Editing. On success the controller returns to Idle with the saved
// values; on failure it remains in Editing, unchanged.
func (c *Controller) SaveEdit(ctx context.Context) error {
	if c.state != StateEditing {
		return ErrNotEditing
	}
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	code, review := c.code, c.review
	saved, err := c.api.UpdateSession(ctx, c.selectedID, &code, &review)
	if err != nil {
		return err
	}

	c.state = StateIdle
	c.selectedID = ""
	c.code = saved.Code
	c.review = saved.Review
	return c.refreshHistory(ctx)
}

// Delete removes a history item. If the deleted item is the current
// selection, the controller resets to Idle with empty buffers.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	if err := c.api.DeleteSession(ctx, id); err != nil {
		return err
	}

	if c.selectedID == id {
		c.New()
	}
	return c.refreshHistory(ctx)
}

// RefreshHistory re-fetches the session list from the server.
func (c *Controller) RefreshHistory(ctx context.Context) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()
	return c.refreshHistory(ctx)
}

// refreshHistory fully replaces the cached list with the server's current
// listing, so the client never displays state the server has superseded.
func (c *Controller) refreshHistory(ctx context.Context) error {
	sessions, err := c.api.ListSessions(ctx)
	if err != nil {
		return err
	}
	c.sessions = sessions
	return nil
}

func (c *Controller) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return ErrActionInFlight
	}
	c.inFlight = true
	return nil
}

func (c *Controller) end() {
	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()
}
