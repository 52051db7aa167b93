package apperr

type Kind string

type AppError struct {
	Kind      Kind
	PublicMsg string            // safe to show to the operator
	Fields    map[string]string // per-field validation messages (optional)
	Err       error             // internal cause (logged only)
}
