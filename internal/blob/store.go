package blob

import "errors"

// #region store-interface

// ErrNotFound is returned by Get when nothing has been stored under the key.
var ErrNotFound = errors.New("blob not found")

// Store persists opaque blobs under stable key names. Put replaces the whole
// blob; readers never observe a partial write.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, data []byte) error
	Close() error
}

// #endregion store-interface

// #region keys

// Collection keys of the persisted layout.
const (
	KeyPerceptions       = "perception_entries"
	KeyInvestments       = "investment_entries"
	KeyMacroThinking     = "macro_thinking_entries"
	KeyInsights          = "generated_insights"
	KeyEventLogs         = "event_logs"
	KeyEveningPromptPref = "eveningNotificationEnabled"
)

// #endregion keys
