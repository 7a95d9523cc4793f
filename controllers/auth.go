package controllers

import (
	"errors"
	"net/http"
	"time"

	"frenoshugo-backend/models"
	"frenoshugo-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	db        *gorm.DB
	jwtSecret string
}

func NewAuthController(db *gorm.DB, jwtSecret string) *AuthController {
	return &AuthController{db: db, jwtSecret: jwtSecret}
}

// Login authenticates a shop operator and returns a session token for the
// administrative routes.
func (ctl *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Usuario y contraseña son obligatorios")
		return
	}

	var user models.User
	err := ctl.db.WithContext(c.Request.Context()).
		Where("username = ?", input.Username).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !utils.CheckPasswordHash(input.Password, user.Password)) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Credenciales inválidas")
		return
	}
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Error al iniciar sesión")
		return
	}

	token, err := utils.GenerateToken(ctl.jwtSecret, user.ID.String(), user.Username)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Error al iniciar sesión")
		return
	}

	now := time.Now()
	user.LastLogin = &now
	ctl.db.Model(&user).Update("last_login", now)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}
