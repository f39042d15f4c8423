package shared

import "time"

// Appraisal periods arrive either as bare dates from the period picker or as
// full RFC3339 timestamps from API clients.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	var err error
	for _, layout := range dateLayouts {
		var parsed time.Time
		if parsed, err = time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, err
}
