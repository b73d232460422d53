package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// Date is a calendar day. It marshals as "YYYY-MM-DD", the format the
	// persisted collection uses.
	Date struct {
		time.Time
	}

	// Expense is a single dated spending entry. ID and CreatedAt are
	// assigned once at creation and never change; everything else is
	// freely mutable through the store.
	Expense struct {
		ID          string    `json:"id"`
		Amount      Money     `json:"amount"`
		Description string    `json:"description"`
		Category    string    `json:"category"`
		Date        Date      `json:"date"`
		CreatedAt   time.Time `json:"createdAt"`
	}

	// User is the mock identity synthesized at login/signup time. There is
	// no server-verified identity behind it.
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}

	// AuthState is the client-held session snapshot. IsAuthenticated is
	// true iff both User and Token are present.
	AuthState struct {
		User            *User  `json:"user"`
		Token           string `json:"token,omitempty"`
		IsAuthenticated bool   `json:"isAuthenticated"`
	}

	// CategoryAmount is an amount aggregated under one category label.
	CategoryAmount struct {
		Category string `json:"category"`
		Amount   Money  `json:"amount"`
	}

	// MonthAmount is an amount aggregated under one month+year key,
	// e.g. "Jun 2024".
	MonthAmount struct {
		Month  string `json:"month"`
		Amount Money  `json:"amount"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrEmptyDescription = errors.New("empty description")
	ErrUnknownCategory  = errors.New("unknown category")
)

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month and day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// MonthKey returns the grouping key used by the monthly aggregates,
// short month name plus year ("Jun 2024").
func (d Date) MonthKey() string {
	return d.Format("Jan 2006")
}

// MonthStart returns midnight UTC on the first day of the date's month,
// used as the chronological sort key for monthly aggregates.
func (d Date) MonthStart() time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return ErrInvalidDate
	}
	d.Time = t
	return nil
}

// Validate checks the form-level constraints on an expense. The store does
// not call this; callers are responsible for validating before mutating.
func (e Expense) Validate() error {
	if e.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if !IsCategory(e.Category) {
		return ErrUnknownCategory
	}
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}
