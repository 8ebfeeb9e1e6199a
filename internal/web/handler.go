package web

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/ifund-app/ifund/internal/config"
	"github.com/ifund-app/ifund/internal/domain"
	"github.com/ifund-app/ifund/internal/service"
)

var validate = validator.New()

// Handler holds the dependencies of the web-channel routes.
type Handler struct {
	cfg         *config.Config
	users       *service.UserService
	ledger      *service.LedgerService
	tasks       *service.TaskService
	withdrawals *service.WithdrawalService
	codes       *service.CodeService
	solvency    *service.SolvencyService
	captcha     *CaptchaVerifier
}

type Deps struct {
	Cfg         *config.Config
	Users       *service.UserService
	Ledger      *service.LedgerService
	Tasks       *service.TaskService
	Withdrawals *service.WithdrawalService
	Codes       *service.CodeService
	Solvency    *service.SolvencyService
	Captcha     *CaptchaVerifier
}

func New(deps Deps) *Handler {
	return &Handler{
		cfg:         deps.Cfg,
		users:       deps.Users,
		ledger:      deps.Ledger,
		tasks:       deps.Tasks,
		withdrawals: deps.Withdrawals,
		codes:       deps.Codes,
		solvency:    deps.Solvency,
		captcha:     deps.Captcha,
	}
}

// Register mounts all web-channel routes.
func (h *Handler) Register(app *fiber.App) {
	app.Use(RequestLogger())

	api := app.Group("/api")
	api.Post("/signup", h.Signup)
	api.Post("/login", h.Login)

	authed := api.Group("", Protected(h.cfg.JWTSecret))
	authed.Get("/me", h.Me)
	authed.Post("/tasks/next", h.NextTask)
	authed.Post("/tasks/answer", h.AnswerTask)
	authed.Post("/convert", h.Convert)
	authed.Get("/withdrawals", h.MyWithdrawals)
	authed.Post("/withdrawals", h.RequestWithdrawal)

	admin := authed.Group("/admin", AdminRequired())
	admin.Get("/overview", h.Overview)
	admin.Get("/withdrawals", h.AllWithdrawals)
	admin.Post("/withdrawals/:id", h.ProcessWithdrawal)
	admin.Post("/funds", h.AddFunds)
	admin.Post("/codes", h.GenerateCodes)
}

// businessError maps domain rejections onto HTTP responses; anything
// unmapped bubbles up as a 500.
func businessError(c *fiber.Ctx, err error) error {
	if ce, ok := domain.AsCooldown(err); ok {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error":             "Please wait before the next task",
			"remaining_seconds": int(ce.Remaining.Seconds() + 0.999),
		})
	}

	status := fiber.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, domain.ErrInsufficientBalance):
		status, message = fiber.StatusUnprocessableEntity, "Insufficient balance"
	case errors.Is(err, domain.ErrBelowMinimum):
		status, message = fiber.StatusUnprocessableEntity, "Amount below minimum"
	case errors.Is(err, domain.ErrCodeNotFound), errors.Is(err, domain.ErrCodeAlreadyUsed):
		status, message = fiber.StatusConflict, "Invalid or used activation code"
	case errors.Is(err, domain.ErrUsernameTaken):
		status, message = fiber.StatusConflict, "Username already taken"
	case errors.Is(err, domain.ErrEmailTaken):
		status, message = fiber.StatusConflict, "Email already registered"
	case errors.Is(err, domain.ErrInvalidCredentials):
		status, message = fiber.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, domain.ErrNoActiveTask):
		status, message = fiber.StatusConflict, "No task awaiting an answer"
	case errors.Is(err, domain.ErrUserNotFound):
		status, message = fiber.StatusNotFound, "User not found"
	case errors.Is(err, domain.ErrWithdrawalNotFound):
		status, message = fiber.StatusNotFound, "Withdrawal not found"
	case errors.Is(err, domain.ErrSuspiciousActivity):
		status, message = fiber.StatusForbidden, "Suspicious activity detected"
	}

	return c.Status(status).JSON(fiber.Map{"error": message})
}
