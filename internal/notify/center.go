package notify

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/percepta/journal/internal/datekey"
)

// #region authorization

// AuthorizationStatus is the host's notification permission.
type AuthorizationStatus string

const (
	StatusNotDetermined AuthorizationStatus = "notDetermined"
	StatusDenied        AuthorizationStatus = "denied"
	StatusAuthorized    AuthorizationStatus = "authorized"
	StatusProvisional   AuthorizationStatus = "provisional"
	StatusEphemeral     AuthorizationStatus = "ephemeral"
)

// CanSchedule reports whether requests may be scheduled under s.
func (s AuthorizationStatus) CanSchedule() bool {
	switch s {
	case StatusAuthorized, StatusProvisional, StatusEphemeral:
		return true
	}
	return false
}

// #endregion authorization

// #region request

// Request is a daily local notification fired at Hour:Minute in Location.
type Request struct {
	ID       string
	Title    string
	Body     string
	Hour     int
	Minute   int
	Location *time.Location
	Repeats  bool
	UserInfo map[string]string
}

// NextFire returns the first hour:minute in loc strictly after now.
func NextFire(now time.Time, hour, minute int, loc *time.Location) time.Time {
	if loc == nil {
		loc = datekey.DefaultZone
	}
	local := now.In(loc)
	fire := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	if !fire.After(local) {
		fire = time.Date(local.Year(), local.Month(), local.Day()+1, hour, minute, 0, 0, loc)
	}
	return fire
}

// #endregion request

// #region center

// Center is the host notification facility.
type Center interface {
	Status(ctx context.Context) (AuthorizationStatus, error)
	RequestAuthorization(ctx context.Context) (bool, error)
	Schedule(ctx context.Context, req Request) error
	Cancel(ctx context.Context, ids ...string) error
	Pending(ctx context.Context) ([]Request, error)
}

// #endregion center

// #region local-center

type scheduled struct {
	req  Request
	next time.Time
}

// LocalCenter is an in-process Center. Scheduled requests are delivered by Run.
type LocalCenter struct {
	mu      sync.Mutex
	status  AuthorizationStatus
	grant   bool
	pending map[string]scheduled
	clock   datekey.Clock
	wake    chan struct{}
}

// NewLocalCenter starts in status; an authorization request from
// StatusNotDetermined resolves to authorized when grant is true, denied otherwise.
func NewLocalCenter(status AuthorizationStatus, grant bool, clock datekey.Clock) *LocalCenter {
	if clock == nil {
		clock = datekey.SystemClock{}
	}
	if status == "" {
		status = StatusNotDetermined
	}
	return &LocalCenter{
		status:  status,
		grant:   grant,
		pending: make(map[string]scheduled),
		clock:   clock,
		wake:    make(chan struct{}, 1),
	}
}

func (c *LocalCenter) Status(ctx context.Context) (AuthorizationStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status, ctx.Err()
}

// SetStatus changes the permission, as a user would in system settings.
func (c *LocalCenter) SetStatus(s AuthorizationStatus) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
}

func (c *LocalCenter) RequestAuthorization(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == StatusNotDetermined {
		if c.grant {
			c.status = StatusAuthorized
		} else {
			c.status = StatusDenied
		}
	}
	return c.status.CanSchedule(), nil
}

// Schedule replaces any pending request with the same ID.
func (c *LocalCenter) Schedule(ctx context.Context, req Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	c.pending[req.ID] = scheduled{req: req, next: NextFire(c.clock.Now(), req.Hour, req.Minute, req.Location)}
	c.mu.Unlock()
	c.poke()
	return nil
}

func (c *LocalCenter) Cancel(ctx context.Context, ids ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	for _, id := range ids {
		delete(c.pending, id)
	}
	c.mu.Unlock()
	c.poke()
	return nil
}

// Pending returns scheduled requests ordered by ID.
func (c *LocalCenter) Pending(ctx context.Context) ([]Request, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Request, 0, len(c.pending))
	for _, s := range c.pending {
		out = append(out, s.req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, ctx.Err()
}

// NextFireTime returns when the request with id will next be delivered.
func (c *LocalCenter) NextFireTime(id string) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.pending[id]
	return s.next, ok
}

// Run delivers requests as they come due until ctx is done. Repeating
// requests are rescheduled for the following day after each delivery.
func (c *LocalCenter) Run(ctx context.Context, deliver func(Request)) error {
	for {
		at, ok := c.earliest()
		var (
			timer *time.Timer
			fire  <-chan time.Time
		)
		if ok {
			d := at.Sub(c.clock.Now())
			if d < 0 {
				d = 0
			}
			timer = time.NewTimer(d)
			fire = timer.C
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()
		case <-c.wake:
			if timer != nil {
				timer.Stop()
			}
		case <-fire:
			for _, req := range c.takeDue(at) {
				deliver(req)
			}
		}
	}
}

func (c *LocalCenter) poke() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

func (c *LocalCenter) earliest() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var (
		first time.Time
		found bool
	)
	for _, s := range c.pending {
		if !found || s.next.Before(first) {
			first, found = s.next, true
		}
	}
	return first, found
}

// takeDue removes or advances every request due at or before at.
func (c *LocalCenter) takeDue(at time.Time) []Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	var due []Request
	for id, s := range c.pending {
		if s.next.After(at) {
			continue
		}
		due = append(due, s.req)
		if s.req.Repeats {
			s.next = NextFire(s.next, s.req.Hour, s.req.Minute, s.req.Location)
			c.pending[id] = s
		} else {
			delete(c.pending, id)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].ID < due[j].ID })
	return due
}

// #endregion local-center
