package constants

const (
	HTTPCodeOK                  = 200
	HTTPCodeBadRequest          = 400
	HTTPCodeUnauthorized        = 401
	HTTPCodeForbidden           = 403
	HTTPCodeNotFound            = 404
	HTTPCodeTooManyRequests     = 429
	HTTPCodeInternalServerError = 500
	HTTPCodeServiceUnavailable  = 503
)
