package listing

import (
	"encoding/xml"
	"strings"

	"autolist/lister/internal/domain"

	log "github.com/sirupsen/logrus"
)

const ackSuccess = "Success"

type tradingError struct {
	ShortMessage string `xml:"ShortMessage"`
	LongMessage  string `xml:"LongMessage"`
	ErrorCode    string `xml:"ErrorCode"`
	SeverityCode string `xml:"SeverityCode"`
}

type tradingResponse struct {
	Ack    string         `xml:"Ack"`
	ItemID string         `xml:"ItemID"`
	Errors []tradingError `xml:"Errors"`
}

// ParseResponse interprets a trading call acknowledgement. It never fails, a body
// that cannot be read is reported as an unknown error.
func ParseResponse(body []byte) *domain.PublishResult {
	var resp tradingResponse
	if err := xml.Unmarshal(body, &resp); err != nil {
		log.Warnf("⚠️ Unreadable marketplace response: %v", err)
		return &domain.PublishResult{
			Status:   domain.PublishError,
			Messages: []string{domain.UnknownPublishError},
		}
	}

	if strings.TrimSpace(resp.Ack) == ackSuccess {
		return &domain.PublishResult{
			Status:    domain.PublishSuccess,
			ListingID: strings.TrimSpace(resp.ItemID),
		}
	}

	messages := make([]string, 0, len(resp.Errors))
	for _, e := range resp.Errors {
		msg := strings.TrimSpace(e.LongMessage)
		if msg == "" {
			msg = strings.TrimSpace(e.ShortMessage)
		}
		if msg != "" {
			messages = append(messages, msg)
		}
	}
	if len(messages) == 0 {
		messages = append(messages, domain.UnknownPublishError)
	}

	return &domain.PublishResult{
		Status:    domain.PublishError,
		ListingID: strings.TrimSpace(resp.ItemID),
		Messages:  messages,
	}
}
