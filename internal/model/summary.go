package model

// Summary condenses a record set for the human-readable reports.
//
// Design decision: We compute the summary from the records rather than
// storing counters in Report because records can also come from the
// record store, where no Report exists.
type Summary struct {
	// Total is the number of records.
	Total int `json:"total"`

	// Complete is the number of records with no sentinel field.
	Complete int `json:"complete"`

	// Missing counts records per missing field name
	// (title, office, phone, email, website).
	Missing map[string]int `json:"missing"`
}

// SummaryFields lists the optional record fields in display order.
var SummaryFields = []string{"title", "office", "phone", "email", "website"}

// NewSummary summarizes records.
func NewSummary(records []FacultyRecord) *Summary {
	s := &Summary{
		Total:   len(records),
		Missing: make(map[string]int, len(SummaryFields)),
	}
	for _, field := range SummaryFields {
		s.Missing[field] = 0
	}

	for i := range records {
		missing := records[i].MissingFields()
		if len(missing) == 0 {
			s.Complete++
			continue
		}
		for _, field := range missing {
			s.Missing[field]++
		}
	}
	return s
}

// Incomplete is the number of records with at least one sentinel field.
func (s *Summary) Incomplete() int {
	return s.Total - s.Complete
}
