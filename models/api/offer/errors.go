package offerapimodels

// ValidationError datos rechazados por el usuario; el mensaje se muestra tal cual.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
