// Package chatconfig persists the per-chat reward event configuration: one
// event identifier per chat per kind (join, check-in), written by admin
// commands and read on every join or check-in event.
package chatconfig

import (
	"context"
	"fmt"
)

// Kind selects which of the two per-chat config slots a key addresses.
type Kind string

const (
	KindJoin    Kind = "join"
	KindCheckin Kind = "checkin"
)

const (
	joinEventKey    = "JOIN_EVENT_ID:%d"
	checkinEventKey = "CHECKIN_EVENT_ID:%d"
)

// Key returns the storage key for this kind and chat.
func (k Kind) Key(chatID int64) string {
	if k == KindJoin {
		return fmt.Sprintf(joinEventKey, chatID)
	}
	return fmt.Sprintf(checkinEventKey, chatID)
}

// Store is the chat configuration contract. Get returns "" with a nil error
// when no identifier has been configured. Set stores the identifier verbatim
// and rejects empty values; records are overwritten, never deleted.
type Store interface {
	Get(ctx context.Context, kind Kind, chatID int64) (string, error)
	Set(ctx context.Context, kind Kind, chatID int64, eventID string) error
}
