package httpdto

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func NewErrorResponse(detail string) ErrorResponse {
	return ErrorResponse{Detail: detail}
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
