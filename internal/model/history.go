package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeMark is the time axis marker of a history bar. Charting consumers
// expect Unix-seconds timestamps for intraday series and YYYY-MM-DD date
// strings for daily and coarser series, so a mark carries exactly one of
// the two representations. A single series never mixes both.
type TimeMark struct {
	unix int64
	date string
}

// IntradayMark builds a Unix-seconds marker.
func IntradayMark(t time.Time) TimeMark {
	return TimeMark{unix: t.Unix()}
}

// DailyMark builds a calendar-date marker.
func DailyMark(t time.Time) TimeMark {
	return TimeMark{date: t.UTC().Format("2006-01-02")}
}

// Intraday reports whether the mark is a timestamp rather than a date.
func (m TimeMark) Intraday() bool { return m.date == "" }

// Unix returns the timestamp of an intraday mark, 0 otherwise.
func (m TimeMark) Unix() int64 { return m.unix }

// Date returns the YYYY-MM-DD string of a daily mark, "" otherwise.
func (m TimeMark) Date() string { return m.date }

// Key returns a stable identity string, used to reject duplicate bars.
func (m TimeMark) Key() string {
	if m.Intraday() {
		return strconv.FormatInt(m.unix, 10)
	}
	return m.date
}

func (m TimeMark) MarshalJSON() ([]byte, error) {
	if m.Intraday() {
		return []byte(strconv.FormatInt(m.unix, 10)), nil
	}
	return []byte(`"` + m.date + `"`), nil
}

func (m *TimeMark) UnmarshalJSON(data []byte) error {
	s := string(data)
	if strings.HasPrefix(s, `"`) {
		m.date = strings.Trim(s, `"`)
		m.unix = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("time marker %q: %w", s, err)
	}
	m.unix = n
	m.date = ""
	return nil
}

// HistoryPoint is a single candlestick bar of a price series.
type HistoryPoint struct {
	Time   TimeMark `json:"time"`
	Open   float64  `json:"open"`
	High   float64  `json:"high"`
	Low    float64  `json:"low"`
	Close  float64  `json:"close"`
	Volume float64  `json:"volume"`
}
