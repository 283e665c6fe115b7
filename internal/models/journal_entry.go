package models

import "time"

// DateLayout is the wire and storage format of journal entry dates
const DateLayout = "2006-01-02"

// JournalFields holds the ten reflection answers. A nil field was not supplied.
type JournalFields struct {
	Accomplishment     *string `json:"accomplishment"`
	Learning           *string `json:"learning"`
	HardestMoment      *string `json:"hardest_moment"`
	FocusTime          *string `json:"focus_time"`
	Avoidance          *string `json:"avoidance"`
	DecisionRegret     *string `json:"decision_regret"`
	EnergySources      *string `json:"energy_sources"`
	TimeIntentionality *string `json:"time_intentionality"`
	GoalsReflection    *string `json:"goals_reflection"`
	TomorrowAction     *string `json:"tomorrow_action"`
}

// Pointers returns the fields in column order
func (f *JournalFields) Pointers() []*string {
	return []*string{
		f.Accomplishment,
		f.Learning,
		f.HardestMoment,
		f.FocusTime,
		f.Avoidance,
		f.DecisionRegret,
		f.EnergySources,
		f.TimeIntentionality,
		f.GoalsReflection,
		f.TomorrowAction,
	}
}

// ScanTargets returns addresses of the fields in column order, for row scanning
func (f *JournalFields) ScanTargets() []any {
	return []any{
		&f.Accomplishment,
		&f.Learning,
		&f.HardestMoment,
		&f.FocusTime,
		&f.Avoidance,
		&f.DecisionRegret,
		&f.EnergySources,
		&f.TimeIntentionality,
		&f.GoalsReflection,
		&f.TomorrowAction,
	}
}

// JournalColumns lists the answer columns in the same order as Pointers and ScanTargets
var JournalColumns = []string{
	"accomplishment",
	"learning",
	"hardest_moment",
	"focus_time",
	"avoidance",
	"decision_regret",
	"energy_sources",
	"time_intentionality",
	"goals_reflection",
	"tomorrow_action",
}

type JournalEntry struct {
	ID        string `json:"id,omitempty"`
	UserID    string `json:"user_id"`
	EntryDate string `json:"entry_date"`
	JournalFields
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// IsDraft reports whether the entry has not been saved yet
func (e *JournalEntry) IsDraft() bool {
	return e.ID == ""
}
