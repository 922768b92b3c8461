package responses

import (
	"github.com/gin-gonic/gin"

	"github.com/miuye256/restaurant-chatbot-backend/internal/infrastructure/logger"
	"github.com/miuye256/restaurant-chatbot-backend/internal/utils/platformerrors"
)

// ErrorResponse is the JSON error body returned by every endpoint.
type ErrorResponse struct {
	Error ErrorInfo `json:"error"`
}

// ErrorInfo holds error information
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HandleError maps a (platform) error to an HTTP error response and logs it.
func HandleError(c *gin.Context, err error) {
	log := logger.GetLogger()

	var platformErr *platformerrors.PlatformError
	if pe, ok := err.(*platformerrors.PlatformError); ok {
		platformErr = pe
	} else {
		platformErr = platformerrors.AsError(c.Request.Context(), platformerrors.LayerHandler, err, "internal error")
	}

	platformerrors.LogError(log, platformErr)

	status := platformerrors.ErrorTypeToHTTPStatus(platformErr.Type)
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorInfo{
			Code:    platformErr.UUID,
			Message: platformErr.Message,
		},
	})
}

// HandleNewError builds a fresh platform error and writes it as the response.
func HandleNewError(c *gin.Context, errorType platformerrors.ErrorType, message, customUUID string) {
	HandleError(c, platformerrors.NewError(c.Request.Context(), platformerrors.LayerHandler, errorType, message, nil, customUUID))
}
