// Package ledger is the personal income and expense tracker. It holds no
// state of its own: callers pass the current entries to Reduce and persist
// whatever it returns.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StorageKey is the key under which clients keep the serialized ledger.
const StorageKey = "hanvitt-wealth-tracker"

// DateLayout is the calendar date format of Entry.Date.
const DateLayout = "2006-01-02"

type EntryType string

const (
	Income  EntryType = "income"
	Expense EntryType = "expense"
)

// IncomeCategories and ExpenseCategories are the allowed categories per type.
var (
	IncomeCategories  = []string{"salary", "freelance", "investment", "rental", "other_income"}
	ExpenseCategories = []string{"food", "transport", "utilities", "rent", "shopping", "healthcare", "education", "entertainment", "insurance", "other_expense"}
)

var (
	ErrInvalidEntry    = errors.New("invalid ledger entry")
	ErrInvalidAmount   = fmt.Errorf("%w: amount must be positive", ErrInvalidEntry)
	ErrInvalidType     = fmt.Errorf("%w: unknown entry type", ErrInvalidEntry)
	ErrInvalidCategory = fmt.Errorf("%w: category does not match type", ErrInvalidEntry)
	ErrInvalidDate     = fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidEntry)
	ErrDuplicateID     = fmt.Errorf("%w: duplicate id", ErrInvalidEntry)
	ErrUnknownAction   = errors.New("unknown ledger action")
)

// Entry is one income or expense record. Entries are never edited; a
// correction is a delete followed by an add.
type Entry struct {
	ID          string    `json:"id"`
	Type        EntryType `json:"type"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
}

// Month returns the YYYY-MM part of the entry date.
func (e Entry) Month() string {
	if len(e.Date) < 7 {
		return e.Date
	}
	return e.Date[:7]
}

func (e Entry) validate() error {
	if !(e.Amount > 0) {
		return ErrInvalidAmount
	}
	var allowed []string
	switch e.Type {
	case Income:
		allowed = IncomeCategories
	case Expense:
		allowed = ExpenseCategories
	default:
		return ErrInvalidType
	}
	if !contains(allowed, e.Category) {
		return ErrInvalidCategory
	}
	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		return ErrInvalidDate
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ActionKind names a ledger mutation.
type ActionKind string

const (
	ActionAdd    ActionKind = "add"
	ActionDelete ActionKind = "delete"
	ActionClear  ActionKind = "clear"
)

// Action is a single mutation. Entry is used by add, ID by delete.
type Action struct {
	Kind  ActionKind `json:"kind"`
	Entry Entry      `json:"entry,omitempty"`
	ID    string     `json:"id,omitempty"`
}

// Add builds an add action.
func Add(e Entry) Action { return Action{Kind: ActionAdd, Entry: e} }

// Delete builds a delete action.
func Delete(id string) Action { return Action{Kind: ActionDelete, ID: id} }

// Clear builds a clear action. Asking the user to confirm is the caller's job.
func Clear() Action { return Action{Kind: ActionClear} }

// Reduce applies a to prior and returns the new entry list, most recent
// first. prior is never modified.
//
// An added entry without an ID gets a random UUID and an empty description
// defaults to its category. Deleting an unknown ID is a no-op.
func Reduce(prior []Entry, a Action) ([]Entry, error) {
	switch a.Kind {
	case ActionAdd:
		e := a.Entry
		if err := e.validate(); err != nil {
			return nil, err
		}
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		for _, existing := range prior {
			if existing.ID == e.ID {
				return nil, ErrDuplicateID
			}
		}
		if e.Description == "" {
			e.Description = e.Category
		}
		next := make([]Entry, 0, len(prior)+1)
		next = append(next, e)
		return append(next, prior...), nil

	case ActionDelete:
		next := make([]Entry, 0, len(prior))
		for _, e := range prior {
			if e.ID != a.ID {
				next = append(next, e)
			}
		}
		return next, nil

	case ActionClear:
		return []Entry{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, a.Kind)
}

// ReduceAll applies actions in order, stopping at the first error.
func ReduceAll(prior []Entry, actions ...Action) ([]Entry, error) {
	cur := prior
	for i, a := range actions {
		next, err := Reduce(cur, a)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		cur = next
	}
	return cur, nil
}
