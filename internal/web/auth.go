package web

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/ifund-app/ifund/internal/service"
)

type SignupRequest struct {
	ActivationCode string `json:"activation_code" validate:"required"`
	Username       string `json:"username" validate:"required,min=3,max=50"`
	FullName       string `json:"full_name" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	Referrer       string `json:"ref,omitempty"`
	CaptchaToken   string `json:"captcha_token,omitempty"`
}

type UserResponse struct {
	PublicID        string `json:"public_id"`
	Username        string `json:"username"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Points          int64  `json:"points"`
	CashBalance     string `json:"cash_balance"`
	Referrals       int64  `json:"referrals"`
	ReferralBalance string `json:"referral_balance"`
}

func (h *Handler) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.captcha.Verify(c.Context(), req.CaptchaToken, c.IP()); err != nil {
		return businessError(c, err)
	}

	user, err := h.users.Signup(c.Context(), service.SignupParams{
		ActivationCode:   req.ActivationCode,
		Username:         req.Username,
		FullName:         req.FullName,
		Email:            req.Email,
		Password:         req.Password,
		ReferrerPublicID: req.Referrer,
	})
	if err != nil {
		slog.Warn("signup rejected", "username", req.Username, "error", err)
		return businessError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(UserResponse{
		PublicID:        user.PublicID,
		Username:        user.Username,
		FullName:        user.FullName,
		Email:           user.Email,
		Points:          user.Points,
		CashBalance:     user.CashBalance.StringFixed(2),
		Referrals:       user.Referrals,
		ReferralBalance: user.ReferralBalance.StringFixed(2),
	})
}

type LoginRequest struct {
	Username     string `json:"username" validate:"required"`
	Password     string `json:"password" validate:"required"`
	CaptchaToken string `json:"captcha_token,omitempty"`
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.captcha.Verify(c.Context(), req.CaptchaToken, c.IP()); err != nil {
		return businessError(c, err)
	}

	user, err := h.users.Authenticate(c.Context(), req.Username, req.Password)
	if err != nil {
		return businessError(c, err)
	}

	token, err := CreateToken(h.cfg.JWTSecret, user)
	if err != nil {
		slog.Error("create token", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	return c.JSON(fiber.Map{"token": token})
}
