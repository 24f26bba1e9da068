package model

import (
	"fmt"
	"time"
)

// The ASF search API returns acquisition datetimes in several close-but-not-
// identical formats depending on the output mode and product age, so we need
// lenient "multi-format" parsing functionality, implemented here.

// StandardTimeLayout is the preferred format when producing ASF-like strings
const StandardTimeLayout = "2006-01-02T15:04:05.000000"

var asfTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999Z",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
}

// ParseASFTime is a drop-in replacement for time.Parse, but matching against
// multiple possible ASF time formats
func ParseASFTime(asfTime string) (time.Time, error) {
	for _, layout := range asfTimeLayouts {
		if output, err := time.Parse(layout, asfTime); err == nil {
			return output, nil
		}
	}
	return time.Time{}, fmt.Errorf("Date could not be parsed by any expected time format: `%s`", asfTime)
}
