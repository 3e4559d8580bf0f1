package types

// SuccessEnvelope wraps every successful API payload under "data".
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error shape. Details appear only for codes that
// allow them (validation fields, stock shortfalls).
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps an APIError under "error".
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
