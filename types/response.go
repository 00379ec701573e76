package types

// ApiResponse is the envelope every endpoint returns. ErrorKey carries a
// client-side localization key for validation failures; Message stays
// human-readable.
type ApiResponse struct {
	Message  string      `json:"message"`
	ErrorKey string      `json:"error_key,omitempty"`
	Status   int         `json:"status"`
	Token    string      `json:"token,omitempty"`
	Data     interface{} `json:"data,omitempty"`
}
