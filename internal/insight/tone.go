package insight

import (
	"errors"
	"fmt"
	"strings"
)

// #region tone

// ErrDirective marks a message that tells the user what to do or warns them.
var ErrDirective = errors.New("message is directive")

// directivePhrases are fragments that turn an observation into advice or a warning.
var directivePhrases = []string{
	// Korean imperatives and obligations
	"하세요", "해보세요", "하십시오", "해야", "하지 마", "마세요", "하시길", "바랍니다",
	// Korean warning framing
	"주의", "조심", "경고", "위험", "신중",
	// Korean recommendation framing
	"추천", "권장", "권합니다", "매수하", "매도하",
	// English
	"you should", "should ", "must ", "careful", "warning", "beware",
	"recommend", "advise", "buy now", "sell now",
}

// CheckTone rejects messages containing directive phrasing. Every message the
// engine emits passes through it.
func CheckTone(message string) error {
	lower := strings.ToLower(message)
	for _, p := range directivePhrases {
		if strings.Contains(lower, p) {
			return fmt.Errorf("%w: contains %q", ErrDirective, p)
		}
	}
	return nil
}

// #endregion tone
