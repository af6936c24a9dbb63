package handler

import (
	nethttp "net/http"
	"strings"

	"FootballManager/internal/game/dto"
	"FootballManager/internal/shared/security"
	"FootballManager/internal/shared/transport"

	"github.com/gin-gonic/gin"
)

// saveIdKey 是鉴权中间件写入 gin context 的存档 id 键。
const saveIdKey = "save_id"

// SaveAuth 校验存档令牌：Authorization: Bearer <token>。
// 通过后把令牌里的 save_id 写入 context，后续 handler 据此定位存档。
func SaveAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abortUnauthorized(c, "存档令牌缺失")
			return
		}

		_, claims, err := security.ParseToken(token)
		if err != nil || claims.SaveId == "" {
			abortUnauthorized(c, "存档令牌无效")
			return
		}

		c.Set(saveIdKey, claims.SaveId)
		c.Next()
	}
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

func abortUnauthorized(c *gin.Context, msg string) {
	transport.SetErrorReason(c.Request.Context(), "SAVE_TOKEN_INVALID")
	c.AbortWithStatusJSON(nethttp.StatusOK, dto.Error(transport.Unauthorized, msg))
}

// SaveIdFrom 读取鉴权中间件写入的存档 id。
func SaveIdFrom(c *gin.Context) string {
	return c.GetString(saveIdKey)
}
