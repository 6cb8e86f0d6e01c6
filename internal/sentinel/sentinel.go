package sentinel

var _ error = Error("")

// Error is a string-backed error that can be declared as a const.
// It is comparable by value, so errors.Is matches it through wrapped
// chains without needing an Is method.
type Error string

func (e Error) Error() string {
	return string(e)
}
