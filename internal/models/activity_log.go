package models

import "time"

// ActivityLog is the daily habit record: one row per calendar date with
// a flag per tracked activity. Saving the same date again replaces the
// whole row (upsert on the unique date column).
type ActivityLog struct {
	Base
	Date          time.Time `gorm:"type:date;not null;uniqueIndex" json:"date"`
	Gym           bool      `json:"gym"`
	JiuJitsu      bool      `json:"jiu_jitsu"`
	Skateboarding bool      `json:"skateboarding"`
	Work          bool      `json:"work"`
	Coitus        bool      `json:"coitus"`
	Sauna         bool      `json:"sauna"`
	Supplements   bool      `json:"supplements"`
	Notes         string    `json:"notes"`
}
