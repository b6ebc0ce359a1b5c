package domain

import (
	"time"
	"unicode/utf8"
)

const (
	SavedAtLayout    = "2006-01-02 15:04:05"
	DateLayout       = "2006-01-02"
	MaxSourceLength  = 32
	MaxRawTextLength = 255
)

// WIB is the fixed UTC+7 offset of every ledger timestamp.
var WIB = time.FixedZone("WIB", 7*60*60)

type DepositRecord struct {
	SavedAt time.Time
	Amount  int64
	Source  string
	RawText string
}

func NewDepositRecord(now time.Time, amount int64, source string, rawText string) DepositRecord {
	return DepositRecord{
		SavedAt: now.In(WIB).Truncate(time.Second),
		Amount:  amount,
		Source:  source,
		RawText: rawText,
	}
}

func (r DepositRecord) SavedAtString() string {
	return r.SavedAt.In(WIB).Format(SavedAtLayout)
}

// Bounded returns a copy whose source and raw text fit the ledger columns.
func (r DepositRecord) Bounded() DepositRecord {
	r.Source = TruncateRunes(r.Source, MaxSourceLength)
	r.RawText = TruncateRunes(r.RawText, MaxRawTextLength)
	return r
}

type DepositEvent struct {
	ID      string    `json:"id"`
	SavedAt time.Time `json:"saved_at"`
	Amount  int64     `json:"amount"`
	Source  string    `json:"source"`
}

func NewDepositEvent(id string, record DepositRecord) DepositEvent {
	record = record.Bounded()
	return DepositEvent{
		ID:      id,
		SavedAt: record.SavedAt,
		Amount:  record.Amount,
		Source:  record.Source,
	}
}

func TruncateRunes(value string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(value) <= limit {
		return value
	}

	runes := []rune(value)
	return string(runes[:limit])
}
