package api

import (
	"errors"
	"net/http"

	"SportEvents/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// writeError 领域错误映射为 HTTP 状态码：校验 400，不存在 404，其余 500
func writeError(c *gin.Context, logger *logrus.Logger, op string, err error) {
	switch {
	case service.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case service.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.WithError(err).Errorf("%s 失败", op)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// writeBindError 请求体/查询参数绑定失败
func writeBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fe.Field()+" failed on '"+fe.Tag()+"'")
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": msgs})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
