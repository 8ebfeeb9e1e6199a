package web

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ifund-app/ifund/internal/domain"
)

func (h *Handler) NextTask(c *fiber.Ctx) error {
	ch, err := h.tasks.Issue(c.Context(), currentUserID(c), domain.ChannelWeb)
	if err != nil {
		return businessError(c, err)
	}

	return c.JSON(fiber.Map{
		"kind":     ch.Kind,
		"question": ch.Question,
	})
}

type AnswerRequest struct {
	Answer string `json:"answer" validate:"required"`
}

func (h *Handler) AnswerTask(c *fiber.Ctx) error {
	var req AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := h.tasks.Answer(c.Context(), currentUserID(c), domain.ChannelWeb, req.Answer)
	if err != nil {
		return businessError(c, err)
	}

	if !result.Correct {
		return c.JSON(fiber.Map{"correct": false})
	}
	return c.JSON(fiber.Map{
		"correct": true,
		"earned":  result.Earned,
		"points":  result.NewPoints,
	})
}
