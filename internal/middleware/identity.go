package middleware

import (
	"strings"

	"spm_tracker_backend/internal/config"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// Identity 解析调用方身份：优先取 X-User-ID 头，缺省回落到配置的默认用户
// 本服务不做认证，身份只用于隔离各自的成绩数据
func Identity(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader("X-User-ID"))
		if userID == "" {
			userID = cfg.Tracker.DefaultUserID
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// GetUserID 从 gin 上下文取出 Identity 中间件写入的用户标识
func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
