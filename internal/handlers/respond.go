package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keynertyc/Fullstack-Test-01/internal/utils"
)

// successResponse is the success envelope shared by all endpoints.
type successResponse struct {
	Success    bool                      `json:"success"`
	Message    string                    `json:"message,omitempty"`
	Data       interface{}               `json:"data,omitempty"`
	Pagination *utils.PaginationResponse `json:"pagination,omitempty"`
}

func respondOK(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, successResponse{Success: true, Message: message, Data: data})
}

func respondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, successResponse{Success: true, Message: message, Data: data})
}

func respondPage(c *gin.Context, data interface{}, pagination utils.PaginationResponse) {
	c.JSON(http.StatusOK, successResponse{Success: true, Data: data, Pagination: &pagination})
}
