package stores

import "github.com/gin-gonic/gin"

const ErrorTitleKey = "error-title"

func SetErrorTitle(c *gin.Context, title string) {
	c.Set(ErrorTitleKey, title)
}

func GetErrorTitle(c *gin.Context) string {
	if title := c.GetString(ErrorTitleKey); title != "" {
		return title
	}

	return "Error"
}
