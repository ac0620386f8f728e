package output

// Placeholders for absent values.
const (
	TableMissing  = "-"
	DetailMissing = "None"
)

// OrMissing returns s, or missing when s is empty or nil.
func OrMissing(s *string, missing string) string {
	if s == nil || *s == "" {
		return missing
	}
	return *s
}
