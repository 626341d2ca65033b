package audit

import (
	"time"

	"github.com/google/uuid"
)

// Event outcomes recorded in the trail.
const (
	OutcomeLogin  = "login"
	OutcomeLogout = "logout"
	OutcomeDenied = "denied"
)

// Event is one row of the authorization audit trail.
type Event struct {
	ID        uuid.UUID `json:"id"`
	ActorID   int64     `json:"actor_id"`
	Role      string    `json:"role"`
	Operation string    `json:"operation"`
	TargetID  int64     `json:"target_id,omitempty"`
	Outcome   string    `json:"outcome"`
	Reason    string    `json:"reason,omitempty"`
	At        time.Time `json:"at"`
}

// TimelineFilters narrows a timeline query.
type TimelineFilters struct {
	From     time.Time
	To       time.Time
	Outcome  string
	ActorID  int64
	Page     int
	PageSize int
}

// PagingInfo describes the window returned by Timeline.
type PagingInfo struct {
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	HasNext  bool `json:"has_next"`
	PrevPage int  `json:"prev_page,omitempty"`
	NextPage int  `json:"next_page,omitempty"`
}

// Result bundles timeline rows with paging information.
type Result struct {
	Rows   []Event    `json:"rows"`
	Paging PagingInfo `json:"paging"`
}
