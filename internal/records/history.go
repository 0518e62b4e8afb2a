package records

// HistoryDelimiter separates successive values in a history cell.
const HistoryDelimiter = " | "

// AppendHistory returns the cell value after recording next: next itself
// when the cell was never written, otherwise existing and next joined by
// HistoryDelimiter.
func AppendHistory(existing, next string) string {
	if existing == "" {
		return next
	}
	return existing + HistoryDelimiter + next
}

// LiteralFragment prepares a pre-delimited value for the reminder timestamp
// columns, which store each entry followed by the delimiter. An empty value
// yields an empty fragment.
func LiteralFragment(value string) string {
	if value == "" {
		return ""
	}
	return value + HistoryDelimiter
}
