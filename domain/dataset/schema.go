package dataset

// Schema names the columns the dashboard reads directly. Any other columns a
// dataset carries are only offered through the selectors.
type Schema struct {
	EnteredInterval string
	ExitedInterval  string
	Count           string
	Session         string
	Label           string
	Date            string
}

// DefaultSchema returns the column names of the session-interval export
func DefaultSchema() Schema {
	return Schema{
		EnteredInterval: "Entered Interval",
		ExitedInterval:  "Exited Interval",
		Count:           "Entry Count",
		Session:         "Time in Session",
		Label:           "OTO/Non OTO",
		Date:            "Workshop Date",
	}
}

// Required lists the columns the summary and the fixed charts depend on
func (s Schema) Required() []string {
	return []string{s.Count, s.Session, s.Label, s.Date}
}

// Sample returns the fixed four-row demonstration table
func Sample(s Schema) *Dataset {
	str := NewStringValue
	num := NewNumericValue
	return New(
		[]string{s.EnteredInterval, s.ExitedInterval, s.Count, s.Session, s.Label, s.Date},
		[][]Value{
			{str("11:00 - 11:15"), str("13:45 - 14:00"), num(10), str("30 - 59"), str("Non OTO"), str("01/15/2025")},
			{str("10:45 - 11:00"), str("12:00 - 12:15"), num(5), str("0 - 29"), str("OTO"), str("01/16/2025")},
			{str("11:30 - 11:45"), str("12:30 - 12:45"), num(8), str("60 - 89"), str("Non OTO"), str("01/16/2025")},
			{str("12:15 - 12:30"), str("13:00 - 13:15"), num(12), str("30 - 59"), str("OTO"), str("01/17/2025")},
		},
	)
}
