package utils

import (
	"time"

	"github.com/pkg/errors"
)

var campaignTimestampLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
}

// ParseCampaignTimestamp parses the ISO-8601-like timestamp the campaign API
// returns. The server omits the timezone offset; the offset lives in the
// separate timezone field.
func ParseCampaignTimestamp(value string) (time.Time, error) {
	for _, layout := range campaignTimestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, errors.Errorf("unrecognized timestamp format: %s", value)
}
