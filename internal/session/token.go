package session

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired 判断凭证是否已过期。
// 只做本地检视（不校验签名，签名归远端 API 管）；
// 无法解析或未携带 exp 的凭证视作不透明凭证，交给服务端判定。
func tokenExpired(token string, now time.Time) bool {
	token = strings.TrimSpace(token)
	if token == "" {
		return true
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	expiresAt, err := parsed.Claims.GetExpirationTime()
	if err != nil || expiresAt == nil {
		return false
	}
	return expiresAt.Before(now)
}
