package stores

import "github.com/gin-gonic/gin"

const UsernameKey = "auth-username"

func SetUsername(c *gin.Context, username string) {
	c.Set(UsernameKey, username)
}

func GetUsername(c *gin.Context) (string, bool) {
	username := c.GetString(UsernameKey)
	return username, username != ""
}

func IsLoggedIn(c *gin.Context) bool {
	_, ok := GetUsername(c)
	return ok
}
