package response

import (
	"net/http"

	"railbook/internal/shared/apperror"
	"railbook/pkg/logger"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError writes err using the status code of its error class.
// Internal errors are logged and reported with the fallback message only.
func RespondError(c *gin.Context, fallback string, err error) {
	code := apperror.HTTPStatus(err)
	if code >= http.StatusInternalServerError {
		logger.GetDefault().ForRequest(c).LogHTTPError(c, err, code)
	}
	if code == http.StatusInternalServerError {
		RespondJSON(c, "error", code, fallback, nil, nil)
		return
	}
	RespondJSON(c, "error", code, err.Error(), nil, nil)
}
