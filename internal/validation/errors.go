package validation

// Errors collects field-level validation failures, keyed by field name.
// A nil/empty Errors means the input passed.
type Errors map[string][]string

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e Errors) Any() bool {
	return len(e) > 0
}
