package message

import "time"

// Status is one of the independent boolean flags a listing can select on.
type Status string

const (
	StatusRecent   Status = "recent"
	StatusRead     Status = "read"
	StatusAnswered Status = "answered"
)

// Filter is the parsed form of the message listing query. Statuses are
// OR-union'd with each other; the status group, the search group and the
// two date bounds are AND-composed. A nil Statuses slice means the status
// group is absent and everything passes it.
type Filter struct {
	Statuses      []Status
	Search        string
	SearchEmail   bool
	From          *time.Time // inclusive lower bound on created_at
	To            *time.Time // exclusive upper bound on created_at
	ExcludeBanned bool
}
