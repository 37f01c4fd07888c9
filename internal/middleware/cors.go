package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows any origin. The service exposes an open surface with no
// authentication, so there is nothing to scope the policy to.
func CORS() gin.HandlerFunc {
	return cors.Default()
}
