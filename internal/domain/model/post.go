package model

import "time"

// PublishedPost tracks a live advertisement in the channel. At most one per
// submitter; destroyed when the expiry fires or the post is cleared.
type PublishedPost struct {
	SubmitterID      int64
	ChannelMessageID int
	PlanID           PlanID
	PublishedAt      time.Time
	ExpiresAt        time.Time
}
