package domain

import "time"

const (
	DateLayout      = "2006-01-02"
	DefaultCategory = "general"
)

// Plan is one item of the daily to-do list.
type Plan struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Done     bool   `json:"done"`
	Category string `json:"cat"`
}

// TodayData is the snapshot of the to-do list for a single day.
type TodayData struct {
	Date  string `json:"date"`
	Items []Plan `json:"items"`
}

func NewTodayData(now time.Time) TodayData {
	return TodayData{Date: DayKey(now), Items: []Plan{}}
}

// DayKey formats now as the UTC calendar day used to scope the list.
func DayKey(now time.Time) string {
	return now.UTC().Format(DateLayout)
}
