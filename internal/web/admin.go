package web

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/ifund-app/ifund/internal/service"
)

type LeaderboardEntry struct {
	Rank         int    `json:"rank"`
	Username     string `json:"username"`
	Balance      string `json:"balance"`
	Referrals    int64  `json:"referrals"`
	TotalPayouts string `json:"total_payouts"`
}

func (h *Handler) Overview(c *fiber.Ctx) error {
	report, err := h.solvency.Report(c.Context())
	if err != nil {
		return businessError(c, err)
	}

	rows, err := h.users.Leaderboard(c.Context())
	if err != nil {
		return businessError(c, err)
	}
	leaderboard := make([]LeaderboardEntry, 0, len(rows))
	for i, r := range rows {
		leaderboard = append(leaderboard, LeaderboardEntry{
			Rank:         i + 1,
			Username:     r.Username,
			Balance:      r.CashBalance.StringFixed(2),
			Referrals:    r.Referrals,
			TotalPayouts: r.TotalPayouts.StringFixed(2),
		})
	}

	totalUsers, err := h.users.Count(c.Context())
	if err != nil {
		return businessError(c, err)
	}

	return c.JSON(fiber.Map{
		"total_users":     totalUsers,
		"total_funds":     report.TotalFunds.StringFixed(2),
		"member_earnings": report.MemberEarnings.StringFixed(2),
		"total_cashouts":  report.ApprovedPayouts.StringFixed(2),
		"funds_warning":   report.Warning,
		"leaderboard":     leaderboard,
	})
}

func (h *Handler) AllWithdrawals(c *fiber.Ctx) error {
	withdrawals, err := h.withdrawals.ListAll(c.Context())
	if err != nil {
		return businessError(c, err)
	}

	out := make([]WithdrawalResponse, 0, len(withdrawals))
	for _, w := range withdrawals {
		out = append(out, toWithdrawalResponse(w))
	}
	return c.JSON(out)
}

type ProcessRequest struct {
	Action string `json:"action" validate:"required,oneof=approve reject"`
}

func (h *Handler) ProcessWithdrawal(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid withdrawal id"})
	}

	var req ProcessRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.withdrawals.Process(c.Context(), id, service.Decision(req.Action)); err != nil {
		return businessError(c, err)
	}

	slog.Info("withdrawal processed", "id", id, "action", req.Action, "admin_id", currentUserID(c))
	return c.JSON(fiber.Map{"ok": true})
}

type AddFundsRequest struct {
	Amount string `json:"amount" validate:"required"`
	Note   string `json:"note,omitempty" validate:"max=100"`
}

func (h *Handler) AddFunds(c *fiber.Ctx) error {
	var req AddFundsRequest
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

	entry, err := h.solvency.AddFunds(c.Context(), amount, req.Note)
	if err != nil {
		return businessError(c, err)
	}

	slog.Info("funds added", "amount", entry.Amount, "admin_id", currentUserID(c))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":     entry.ID,
		"amount": entry.Amount.StringFixed(2),
		"note":   entry.Note,
	})
}

type GenerateCodesRequest struct {
	Count  int    `json:"count" validate:"required,min=1,max=500"`
	Policy string `json:"policy,omitempty" validate:"omitempty,oneof=user admin"`
}

func (h *Handler) GenerateCodes(c *fiber.Ctx) error {
	var req GenerateCodesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	policy, ok := service.PolicyByName(req.Policy)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown code policy"})
	}

	codes, err := h.codes.Generate(c.Context(), policy, req.Count)
	if err != nil {
		// Keyspace exhaustion is operational, not a user mistake.
		slog.Error("generate codes", "policy", policy.Name, "count", req.Count, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Code generation failed"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"codes": codes})
}
