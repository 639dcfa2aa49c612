package decode

// DecodeError represents a failure to decode a file's audio content.
// It is fatal for the file it names but never for the session.
type DecodeError struct {
	Format  string `json:"format,omitempty"`
	Name    string `json:"name,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *DecodeError) Error() string {
	msg := e.Message
	if e.Name != "" {
		msg = e.Name + ": " + msg
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Common error codes
const (
	ErrCodeUnsupported = "UNSUPPORTED_FORMAT"
	ErrCodeCorrupt     = "CORRUPT_AUDIO"
	ErrCodeEmpty       = "EMPTY_AUDIO"
)

// NewDecodeError creates a new decode error
func NewDecodeError(format, name, code, message string, cause error) *DecodeError {
	return &DecodeError{
		Format:  format,
		Name:    name,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
