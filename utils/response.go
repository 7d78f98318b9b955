package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// User facing messages.
const (
	MsgNotFound       = "Rota não encontrada"
	MsgInternalError  = "Algo deu errado!"
	MsgDBUnavailable  = "Banco de dados não disponível"
	MsgTooManyRequest = "Muitas requisições, tente novamente mais tarde"
)

// ErrorBody is the JSON shape of every error response.
func ErrorBody(message string) gin.H {
	return gin.H{"error": message}
}

// Error writes {"error": message} with the given status.
func Error(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, ErrorBody(message))
}

// Created writes a 201 with the given payload.
func Created(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusCreated, data)
}

// OK writes a 200 with the given payload.
func OK(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, data)
}
