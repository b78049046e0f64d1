// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

func I18nMiddleware(defaultLang string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("lang", parseAcceptLanguage(c.GetHeader("Accept-Language"), defaultLang))
		c.Next()
	}
}

// parseAcceptLanguage picks a supported locale from the first entry of the
// header, e.g. "pt-BR,pt;q=0.9,en;q=0.8".
func parseAcceptLanguage(header, defaultLang string) string {
	if header == "" {
		return defaultLang
	}

	first := strings.TrimSpace(strings.Split(strings.Split(header, ",")[0], ";")[0])
	switch strings.ToLower(strings.ReplaceAll(first, "_", "-")) {
	case "pt-br", "pt":
		return "pt_BR"
	case "en", "en-us", "en-gb":
		return "en"
	default:
		return defaultLang
	}
}
