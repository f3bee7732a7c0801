package dto

// ReportQuery is the reporting window, both bounds RFC 3339.
type ReportQuery struct {
	From string
	To   string
}
