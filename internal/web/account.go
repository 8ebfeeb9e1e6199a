package web

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/ifund-app/ifund/internal/domain"
)

func (h *Handler) Me(c *fiber.Ctx) error {
	user, err := h.users.GetByID(c.Context(), currentUserID(c))
	if err != nil {
		return businessError(c, err)
	}

	return c.JSON(UserResponse{
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

func (h *Handler) Convert(c *fiber.Ctx) error {
	credit, err := h.ledger.Convert(c.Context(), currentUserID(c))
	if err != nil {
		return businessError(c, err)
	}

	slog.Info("points converted", "user_id", currentUserID(c), "credit", credit)
	return c.JSON(fiber.Map{"credited": credit.StringFixed(2)})
}

type WithdrawalResponse struct {
	ID          int64   `json:"id"`
	Amount      string  `json:"amount"`
	Method      string  `json:"method"`
	Status      string  `json:"status"`
	RequestedAt string  `json:"requested_at"`
	ProcessedAt *string `json:"processed_at,omitempty"`
}

func toWithdrawalResponse(w domain.Withdrawal) WithdrawalResponse {
	resp := WithdrawalResponse{
		ID:          w.ID,
		Amount:      w.Amount.StringFixed(2),
		Method:      w.Method,
		Status:      string(w.Status),
		RequestedAt: w.RequestedAt.Format("2006-01-02 15:04:05"),
	}
	if w.ProcessedAt != nil {
		s := w.ProcessedAt.Format("2006-01-02 15:04:05")
		resp.ProcessedAt = &s
	}
	return resp
}

func (h *Handler) MyWithdrawals(c *fiber.Ctx) error {
	withdrawals, err := h.withdrawals.ListForUser(c.Context(), currentUserID(c))
	if err != nil {
		return businessError(c, err)
	}

	out := make([]WithdrawalResponse, 0, len(withdrawals))
	for _, w := range withdrawals {
		out = append(out, toWithdrawalResponse(w))
	}
	return c.JSON(out)
}
