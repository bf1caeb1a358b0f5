package models

import "time"

// Waitlist holds the slot-limited participation list of one community.
// Main is capacity-bounded, Reserve is unbounded FIFO overflow. Both are
// ordered id lists (insertion order = position), comma-joined.
type Waitlist struct {
	ID          uint  `gorm:"primaryKey;autoIncrement"`
	CommunityID int64 `gorm:"uniqueIndex;not null"`
	// Display message showing the list; zero values mean no active display.
	ChannelID int64
	MessageID int
	Main      string `gorm:"type:text"`
	Reserve   string `gorm:"type:text"`
	Locked    bool   `gorm:"default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MainIDs decodes the main slot sequence.
func (w *Waitlist) MainIDs() []int64 {
	ids, _ := DecodeIDList(w.Main)
	return ids
}

// ReserveIDs decodes the reserve slot sequence.
func (w *Waitlist) ReserveIDs() []int64 {
	ids, _ := DecodeIDList(w.Reserve)
	return ids
}

// SetMainIDs replaces the main slot sequence.
func (w *Waitlist) SetMainIDs(ids []int64) {
	w.Main = EncodeIDList(ids)
}

// SetReserveIDs replaces the reserve slot sequence.
func (w *Waitlist) SetReserveIDs(ids []int64) {
	w.Reserve = EncodeIDList(ids)
}

// HasDisplay reports whether a display message reference is set.
func (w *Waitlist) HasDisplay() bool {
	return w.ChannelID != 0 && w.MessageID != 0
}
