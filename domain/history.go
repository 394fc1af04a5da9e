package domain

// WeeklyActivity counts completed activities for one week.
type WeeklyActivity struct {
	Week  string
	Count int
}

// CategoryShare is a slice of the category distribution.
type CategoryShare struct {
	Name  string
	Value int
	Color string
}
