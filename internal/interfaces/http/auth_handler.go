package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/flota-pro/internal/application/auth"
	"github.com/tu-usuario/flota-pro/internal/application/dto"
)

// AuthHandler maneja registro, login y cambios de rol.
type AuthHandler struct {
	authUC *auth.AuthUseCase
}

// NewAuthHandler construye el handler de autenticación.
func NewAuthHandler(authUC *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{authUC: authUC}
}

// Register godoc
// @Summary      Registrar usuario
// @Description  Alta de usuario con rol y scope (concesionario o empresa según el rol)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "Datos del usuario"
// @Success      201 {object} dto.UserResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	user, err := h.authUC.RegisterUser(req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Valida credenciales y devuelve un JWT con la identidad y el scope del usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Credenciales"
// @Success      200 {object} dto.LoginResponse
// @Failure      401 {object} dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.authUC.Login(req)
	if err != nil {
		// Credenciales inválidas siempre responden 401 sin detalle.
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: "email o contraseña incorrectos"})
	}
	return c.JSON(resp)
}

// ChangeRole godoc
// @Summary      Cambiar rol de usuario
// @Description  Operación explícita de cambio de rol (solo admin de plataforma)
// @Tags         auth
// @Security     BearerAuth
// @Param        id path string true "ID del usuario"
// @Param        request body dto.ChangeRoleRequest true "Nuevo rol"
// @Success      200 {object} dto.UserResponse
// @Failure      403 {object} dto.ErrorResponse
// @Router       /api/users/{id}/role [put]
func (h *AuthHandler) ChangeRole(c *fiber.Ctx) error {
	var req dto.ChangeRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	user, err := h.authUC.ChangeRole(Actor(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}
