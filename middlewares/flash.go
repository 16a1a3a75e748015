package middlewares

import (
	"encoding/json"

	"github.com/kilnhq/kiln/internal"
)

const flashKey = "__FLASH"

// FlashKind classifies a flash message for rendering.
type FlashKind string

const (
	FlashAlert   FlashKind = "alert"
	FlashError   FlashKind = "error"
	FlashInfo    FlashKind = "info"
	FlashWarning FlashKind = "warning"
	FlashSuccess FlashKind = "success"
	FlashNotice  FlashKind = "notice"
)

// Flash is a one-shot message stored in the session until the next read.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Content any       `json:"content"`
}

// SetFlash stores a flash message in the session.
func SetFlash(ctx *internal.Context, flash Flash) error {
	return SetSessionValue(ctx, flashKey, flash)
}

// PopFlash reads and removes the pending flash message. Returns false
// when none is stored.
func PopFlash(ctx *internal.Context) (Flash, bool) {
	raw, ok := GetSessionValue[any](ctx, flashKey)
	if !ok {
		return Flash{}, false
	}
	defer func() { _ = RemoveSessionValue(ctx, flashKey) }()

	switch v := raw.(type) {
	case Flash:
		return v, true
	default:
		// Sessions loaded from a store hold plain JSON values; rebuild
		// the flash through a round-trip.
		data, err := json.Marshal(v)
		if err != nil {
			return Flash{}, false
		}
		var flash Flash
		if err := json.Unmarshal(data, &flash); err != nil {
			return Flash{}, false
		}
		return flash, true
	}
}
