package handlers

import "github.com/gin-gonic/gin"

// UsernameKey is where the auth middleware stores the authenticated
// username in the request context.
const UsernameKey = "username"

func usernameFrom(c *gin.Context) string {
	return c.GetString(UsernameKey)
}
