package middleware

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var devOrigins = []string{"http://localhost:5173", "http://localhost:3000"}

// AllowedOrigins splits ORIGIN_URL (comma separated) and, outside
// production, adds the local front-end dev servers.
func AllowedOrigins(originURL string, production bool) []string {
	var origins []string
	if !production {
		origins = append(origins, devOrigins...)
	}
	for _, o := range strings.Split(originURL, ",") {
		o = strings.TrimSuffix(strings.TrimSpace(o), "/")
		if o != "" && !slices.Contains(origins, o) {
			origins = append(origins, o)
		}
	}
	return origins
}

// CORSMiddleware lets the booking front end call the API with a bearer
// token. Requests from other origins are refused with 403.
func CORSMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
