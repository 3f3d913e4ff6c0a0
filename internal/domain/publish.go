package domain

import "strings"

type PublishStatus string

func (s PublishStatus) String() string {
	return string(s)
}

const (
	PublishSuccess PublishStatus = "success"
	PublishError   PublishStatus = "error"
)

// UnknownPublishError is reported when the marketplace response carries no usable message
const UnknownPublishError = "Unknown error occurred"

// PublishResult is the interpreted marketplace acknowledgement
type PublishResult struct {
	Status    PublishStatus `json:"status"`
	ListingID string        `json:"listing_id,omitempty"`
	Messages  []string      `json:"messages,omitempty"`
}

func (r *PublishResult) OK() bool {
	return r.Status == PublishSuccess
}

// Detail joins the failure messages one per line
func (r *PublishResult) Detail() string {
	return strings.Join(r.Messages, "\n")
}
