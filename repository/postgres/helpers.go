package postgres

import "time"

// textArray normalizes nil slices to empty ones so text[] columns never
// store SQL NULL.
func textArray(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
