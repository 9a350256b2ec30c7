package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/percepta/journal/internal/blob"
	"github.com/percepta/journal/internal/datekey"
)

// #region prompt

const (
	DailyPromptID     = "daily_2230_prompt"
	DailyPromptHour   = 22
	DailyPromptMinute = 30
	DailyPromptTitle  = "Percepta"
	DailyPromptBody   = "오늘 경제 체감은 어떤가요?"
)

// DailyPrompt is the repeating evening request in loc.
func DailyPrompt(loc *time.Location) Request {
	if loc == nil {
		loc = datekey.DefaultZone
	}
	return Request{
		ID:       DailyPromptID,
		Title:    DailyPromptTitle,
		Body:     DailyPromptBody,
		Hour:     DailyPromptHour,
		Minute:   DailyPromptMinute,
		Location: loc,
		Repeats:  true,
		UserInfo: map[string]string{"notificationType": "N1", "homeMode": "questionFocus"},
	}
}

// #endregion prompt

// #region manager

// Manager keeps the evening prompt in step with the user's preference and
// the host permission. It never touches journal data.
type Manager struct {
	center Center
	prefs  blob.Store
	loc    *time.Location
	log    *zap.Logger

	mu     sync.Mutex
	status AuthorizationStatus
}

// NewManager binds a manager to center, storing the preference in prefs.
func NewManager(center Center, prefs blob.Store, loc *time.Location, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{center: center, prefs: prefs, loc: loc, log: log, status: StatusNotDetermined}
}

// Enabled reads the evening preference. A missing or unreadable value is off.
func (m *Manager) Enabled() bool {
	data, err := m.prefs.Get(blob.KeyEveningPromptPref)
	if err != nil {
		if !errors.Is(err, blob.ErrNotFound) {
			m.log.Warn("read notification preference failed", zap.Error(err))
		}
		return false
	}
	var enabled bool
	if err := json.Unmarshal(data, &enabled); err != nil {
		m.log.Warn("decode notification preference failed", zap.Error(err))
		return false
	}
	return enabled
}

func (m *Manager) setEnabled(enabled bool) error {
	data, _ := json.Marshal(enabled)
	if err := m.prefs.Put(blob.KeyEveningPromptPref, data); err != nil {
		return fmt.Errorf("store notification preference: %w", err)
	}
	return nil
}

// Status returns the last observed permission.
func (m *Manager) Status() AuthorizationStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// RefreshStatus re-reads the permission from the center.
func (m *Manager) RefreshStatus(ctx context.Context) (AuthorizationStatus, error) {
	s, err := m.center.Status(ctx)
	if err != nil {
		return m.Status(), fmt.Errorf("notification status: %w", err)
	}
	m.mu.Lock()
	m.status = s
	m.mu.Unlock()
	return s, nil
}

// HandleToggle stores the preference, then schedules (asking for permission
// if needed) or cancels. A toggle left on without permission stays on.
func (m *Manager) HandleToggle(ctx context.Context, enabled bool) error {
	if err := m.setEnabled(enabled); err != nil {
		return err
	}
	if !enabled {
		return m.cancel(ctx)
	}
	ok, err := m.requestAuthorizationIfNeeded(ctx)
	if err != nil || !ok {
		return err
	}
	return m.schedule(ctx)
}

// RescheduleIfNeeded brings the pending prompt in line with the preference.
// Call on launch.
func (m *Manager) RescheduleIfNeeded(ctx context.Context) error {
	status, err := m.RefreshStatus(ctx)
	if err != nil {
		return err
	}
	enabled := m.Enabled()
	switch {
	case enabled && status.CanSchedule():
		return m.schedule(ctx)
	case !enabled:
		return m.cancel(ctx)
	}
	return nil
}

// OnFirstSuccessfulInteraction asks for permission early and schedules only
// when the preference is already on.
func (m *Manager) OnFirstSuccessfulInteraction(ctx context.Context) error {
	ok, err := m.requestAuthorizationIfNeeded(ctx)
	if err != nil {
		return err
	}
	if ok && m.Enabled() {
		return m.schedule(ctx)
	}
	return nil
}

// ShowDeniedWarning reports whether the toggle is on but permission is denied.
func (m *Manager) ShowDeniedWarning(ctx context.Context) bool {
	status, err := m.RefreshStatus(ctx)
	if err != nil {
		m.log.Warn("refresh notification status failed", zap.Error(err))
	}
	return m.Enabled() && status == StatusDenied
}

func (m *Manager) requestAuthorizationIfNeeded(ctx context.Context) (bool, error) {
	status, err := m.RefreshStatus(ctx)
	if err != nil {
		return false, err
	}
	switch {
	case status.CanSchedule():
		return true, nil
	case status == StatusNotDetermined:
		granted, err := m.center.RequestAuthorization(ctx)
		if err != nil {
			return false, fmt.Errorf("request notification permission: %w", err)
		}
		if _, err := m.RefreshStatus(ctx); err != nil {
			return false, err
		}
		return granted, nil
	}
	return false, nil
}

// schedule replaces the pending prompt so repeated calls never duplicate it.
func (m *Manager) schedule(ctx context.Context) error {
	status, err := m.RefreshStatus(ctx)
	if err != nil {
		return err
	}
	if !status.CanSchedule() {
		m.log.Info("evening prompt not scheduled", zap.String("status", string(status)))
		return nil
	}
	if err := m.center.Cancel(ctx, DailyPromptID); err != nil {
		return fmt.Errorf("cancel evening prompt: %w", err)
	}
	if err := m.center.Schedule(ctx, DailyPrompt(m.loc)); err != nil {
		return fmt.Errorf("schedule evening prompt: %w", err)
	}
	m.log.Info("evening prompt scheduled", zap.Int("hour", DailyPromptHour), zap.Int("minute", DailyPromptMinute))
	return nil
}

func (m *Manager) cancel(ctx context.Context) error {
	if err := m.center.Cancel(ctx, DailyPromptID); err != nil {
		return fmt.Errorf("cancel evening prompt: %w", err)
	}
	m.log.Info("evening prompt cancelled")
	return nil
}

// #endregion manager
