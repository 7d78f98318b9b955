package controllers

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dx01/dx01-api/utils"
)

const (
	minFieldLength = 1
	maxFieldLength = 100
)

// fallbackUsers are served when the database could not be reached at startup.
var fallbackUsers = []gin.H{
	{"id": 1, "name": "Marina", "role": "DevOps Engineer"},
	{"id": 2, "name": "GitHub Copilot", "role": "AI Assistant"},
}

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// UserController manages the app_users endpoints.
type UserController struct {
	users UserStore
	state *AppState
}

// NewUserController creates a new UserController instance.
func NewUserController(users UserStore, state *AppState) *UserController {
	return &UserController{users: users, state: state}
}

// ListUsers returns stored users, or the static fallback list in degraded mode.
func (u *UserController) ListUsers(ctx *gin.Context) {
	if !u.state.DatabaseAvailable() {
		utils.OK(ctx, gin.H{"users": fallbackUsers, "source": "fallback"})
		return
	}

	users, err := u.users.ListUsers(dbContext(ctx))
	if err != nil {
		utils.Logger.Error("list users failed", zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, "Erro ao buscar usuários")
		return
	}

	utils.OK(ctx, gin.H{"users": users, "source": "database", "count": len(users)})
}

// CreateUser validates and sanitizes name/role, then inserts the user.
func (u *UserController) CreateUser(ctx *gin.Context) {
	var req struct {
		Name *string `json:"name"`
		Role *string `json:"role"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": []FieldError{{Field: "body", Message: "JSON inválido"}}})
		return
	}

	name, nameErr := sanitizeField(req.Name, "name", "Nome")
	role, roleErr := sanitizeField(req.Role, "role", "Cargo")
	var errs []FieldError
	for _, e := range []*FieldError{nameErr, roleErr} {
		if e != nil {
			errs = append(errs, *e)
		}
	}
	if len(errs) > 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	if !u.state.DatabaseAvailable() {
		utils.Error(ctx, http.StatusServiceUnavailable, utils.MsgDBUnavailable)
		return
	}

	user, err := u.users.CreateUser(dbContext(ctx), name, role)
	if err != nil {
		utils.Logger.Error("create user failed", zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, "Erro ao criar usuário")
		return
	}

	utils.Created(ctx, gin.H{"message": "Usuário criado com sucesso!", "user": user})
}

// sanitizeField trims, checks the length in characters, then HTML-escapes.
func sanitizeField(value *string, field, label string) (string, *FieldError) {
	if value == nil {
		return "", &FieldError{Field: field, Message: label + " é obrigatório"}
	}
	trimmed := strings.TrimSpace(*value)
	if n := utf8.RuneCountInString(trimmed); n < minFieldLength || n > maxFieldLength {
		return "", &FieldError{Field: field, Message: label + " deve ter entre 1 e 100 caracteres"}
	}
	return utils.EscapeHTML(trimmed), nil
}
