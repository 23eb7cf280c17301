// Package response is the result wrapper every JSON endpoint answers with.
package response

import (
	"github.com/gin-gonic/gin"
)

// Body is the envelope: is_success tells the app whether to read result or
// show message in its error dialog.
type Body struct {
	IsSuccess bool        `json:"is_success"`
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	Result    interface{} `json:"result"`
}

const (
	MsgSuccess = "success"
	MsgCreated = "created"
)

// Success sends result with the given status.
func Success(c *gin.Context, status int, result interface{}) {
	msg := MsgSuccess
	if status == 201 {
		msg = MsgCreated
	}
	c.JSON(status, Body{IsSuccess: true, Code: status, Message: msg, Result: result})
}

// Error sends an error envelope; result is null.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Body{IsSuccess: false, Code: status, Message: message})
}

// Abort stops the handler chain with an error envelope (for middleware).
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Body{IsSuccess: false, Code: status, Message: message})
}
