package dto

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes what went wrong. Token, Flag and Position are only set
// for rejected commands.
type ErrorBody struct {
	Kind     string `json:"kind"`
	Message  string `json:"message"`
	Token    string `json:"token,omitempty"`
	Flag     string `json:"flag,omitempty"`
	Position *int   `json:"position,omitempty"`
}

// Error kinds used outside command analysis.
const (
	KindBadRequest    = "BadRequest"
	KindForbidden     = "Forbidden"
	KindRateLimited   = "RateLimited"
	KindNotFound      = "NotFound"
	KindEngineFailure = "EngineFailure"
	KindInvalidFormat = "InvalidFormat"
	KindInternal      = "Internal"
)

// NewError builds an ErrorResponse without command details.
func NewError(kind, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorBody{Kind: kind, Message: message}}
}
