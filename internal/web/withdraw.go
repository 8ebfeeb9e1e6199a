package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type WithdrawRequest struct {
	Amount       string `json:"amount" validate:"required"`
	Method       string `json:"method" validate:"required,max=20"`
	AccountInfo  string `json:"account" validate:"required,max=100"`
	NotifyEmail  string `json:"notify_email,omitempty" validate:"omitempty,email"`
	CaptchaToken string `json:"captcha_token,omitempty"`
}

func (h *Handler) RequestWithdrawal(c *fiber.Ctx) error {
	var req WithdrawRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid amount"})
	}

	if err := h.captcha.Verify(c.Context(), req.CaptchaToken, c.IP()); err != nil {
		return businessError(c, err)
	}

	var notifyEmail *string
	if req.NotifyEmail != "" {
		notifyEmail = &req.NotifyEmail
	}

	w, err := h.withdrawals.Request(c.Context(), currentUserID(c), amount, req.Method, req.AccountInfo, notifyEmail)
	if err != nil {
		return businessError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toWithdrawalResponse(*w))
}
