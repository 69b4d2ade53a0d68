package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jayline-services/assist/app/core"
	"github.com/jayline-services/assist/app/response"
	"github.com/jayline-services/assist/pkg/errors"
	"github.com/jayline-services/assist/pkg/i18n"
	"github.com/jayline-services/assist/pkg/security"
)

const (
	AUTH_TOKEN_HEADER_KEY = "Authorization"

	TOKEN_CONTEXT_KEY = "__token_claims"
)

func I18n() gin.HandlerFunc {
	var allowList []string
	for k := range i18n.ALLOW_LANG {
		allowList = append(allowList, k)
	}
	l := i18n.NewLocalizer(allowList...)

	return response.ProvideResponseLocalizer(l)
}

func Cors(c *gin.Context) {
	method := c.Request.Method
	origin := c.Request.Header.Get("Origin")
	if origin != "" {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Header("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, Authorization")
		c.Header("Access-Control-Expose-Headers", "Content-Length, Access-Control-Allow-Origin, Access-Control-Allow-Headers, Cache-Control, Content-Language, Content-Type")
		c.Header("Access-Control-Allow-Credentials", "true")
	}
	if method == "OPTIONS" {
		c.AbortWithStatus(http.StatusNoContent)
	}
	c.Next()
}

// AdminRequired rejects requests without a valid admin bearer token. A blank
// secret disables the whole admin surface rather than leaving it open.
func AdminRequired(appCore *core.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := appCore.Cfg().Security.JWTSecret
		if secret == "" {
			response.APIError(c, errors.New("middleware.AdminRequired.secret.empty", i18n.ERROR_FORBIDDEN, nil).Code(http.StatusForbidden))
			return
		}

		tokenValue := strings.TrimPrefix(c.GetHeader(AUTH_TOKEN_HEADER_KEY), "Bearer ")
		if tokenValue == "" {
			response.APIError(c, errors.New("middleware.AdminRequired.token.empty", i18n.ERROR_UNAUTHORIZED, nil).Code(http.StatusUnauthorized))
			return
		}

		claims, err := security.VerifyToken(tokenValue, []byte(secret))
		if err != nil {
			response.APIError(c, errors.New("middleware.AdminRequired.VerifyToken", i18n.ERROR_UNAUTHORIZED, err).Code(http.StatusUnauthorized))
			return
		}

		if claims.Role != security.ROLE_ADMIN {
			response.APIError(c, errors.New("middleware.AdminRequired.role.check", i18n.ERROR_FORBIDDEN, nil).Code(http.StatusForbidden))
			return
		}

		c.Set(TOKEN_CONTEXT_KEY, *claims)
	}
}

// InjectTokenClaims returns the admin claims set by AdminRequired.
func InjectTokenClaims(c *gin.Context) (security.TokenClaims, bool) {
	claims, exist := c.Get(TOKEN_CONTEXT_KEY)
	if !exist {
		return security.TokenClaims{}, false
	}
	tc, ok := claims.(security.TokenClaims)
	return tc, ok
}

type LimiterFunc func(key string, opts ...core.LimitOption) gin.HandlerFunc

func UseLimit(appCore *core.Core, genKeyFunc func(c *gin.Context) string, opts ...core.LimitOption) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !appCore.UseLimiter(genKeyFunc(c), opts...).Allow() {
			response.APIError(c, errors.New("middleware.limiter", i18n.ERROR_TOO_MANY_REQUESTS, nil).Code(http.StatusTooManyRequests))
		}
	}
}
