package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func getHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Yoddle Coins Backend API v1"})
}

func getHealth(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
