package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/ifund-app/ifund/internal/domain"
	"github.com/ifund-app/ifund/internal/repository"
)

type UserService struct {
	db      *pgxpool.Pool
	queries *repository.Queries
}

func NewUserService(db *pgxpool.Pool, queries *repository.Queries) *UserService {
	return &UserService{db: db, queries: queries}
}

type SignupParams struct {
	ActivationCode   string
	Username         string
	FullName         string
	Email            string
	Password         string
	ReferrerPublicID string
}

// Signup runs the whole onboarding sequence as one unit of work: the
// activation code flips to used, the account is created, and the
// referral bonus lands, all in the same transaction. A crash between
// any two steps rolls the rest back with it.
func (s *UserService) Signup(ctx context.Context, arg SignupParams) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(arg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	publicID, err := s.generateUniquePublicID(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	qtx := s.queries.WithTx(tx)

	err = qtx.RedeemActivationCode(ctx, repository.RedeemActivationCodeParams{
		Code:   arg.ActivationCode,
		UsedBy: publicID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, s.classifyRedeemFailure(ctx, arg.ActivationCode)
		}
		return nil, fmt.Errorf("redeem code: %w", err)
	}

	user, err := qtx.CreateUser(ctx, repository.CreateUserParams{
		PublicID:       publicID,
		Username:       arg.Username,
		FullName:       arg.FullName,
		Email:          arg.Email,
		PasswordHash:   string(hash),
		ActivationCode: arg.ActivationCode,
	})
	if err != nil {
		switch {
		case repository.IsUniqueViolation(err, "users_username_key"):
			return nil, domain.ErrUsernameTaken
		case repository.IsUniqueViolation(err, "users_email_key"):
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := applyReferralBonus(ctx, qtx, arg.ReferrerPublicID, &user); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &user, nil
}

// classifyRedeemFailure tells a spent code apart from a bogus one after
// the conditional update matched nothing.
func (s *UserService) classifyRedeemFailure(ctx context.Context, code string) error {
	if _, err := s.queries.GetActivationCode(ctx, code); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrCodeNotFound
		}
		return fmt.Errorf("get activation code: %w", err)
	}
	return domain.ErrCodeAlreadyUsed
}

// Authenticate checks username/password and returns the account.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.queries.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return &user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.queries.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &user, nil
}

// Leaderboard returns users ranked by lifetime earnings.
func (s *UserService) Leaderboard(ctx context.Context) ([]repository.LeaderboardRow, error) {
	rows, err := s.queries.ListLeaderboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leaderboard: %w", err)
	}
	return rows, nil
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.queries.CountUsers(ctx)
}

// MessengerCode derives the activation id a chat sender is linked under.
func MessengerCode(senderID int64) string {
	return fmt.Sprintf("IFD-%d", senderID)
}

// GetByChatSender resolves a linked account from a chat sender id.
func (s *UserService) GetByChatSender(ctx context.Context, senderID int64) (*domain.User, error) {
	user, err := s.queries.GetUserByMessengerID(ctx, MessengerCode(senderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by messenger id: %w", err)
	}
	return &user, nil
}

// LinkChatSender verifies credentials and binds the sender to the
// account, once. Returns the messenger activation id to show the user.
func (s *UserService) LinkChatSender(ctx context.Context, senderID int64, username, password string) (string, error) {
	user, err := s.queries.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("get user: %w", err)
	}
	if user.MessengerActive {
		return "", domain.ErrAccountAlreadyLinked
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	code := MessengerCode(senderID)
	_, err = s.queries.LinkMessenger(ctx, repository.LinkMessengerParams{
		Username:    username,
		MessengerID: code,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Lost a race with another linking attempt.
			return "", domain.ErrAccountAlreadyLinked
		}
		return "", fmt.Errorf("link messenger: %w", err)
	}
	return code, nil
}

func (s *UserService) generateUniquePublicID(ctx context.Context) (string, error) {
	for i := 0; i < 10; i++ {
		id, err := randomPublicID()
		if err != nil {
			return "", err
		}
		_, err = s.queries.GetUserByPublicID(ctx, id)
		if errors.Is(err, pgx.ErrNoRows) {
			return id, nil
		}
		if err != nil {
			return "", fmt.Errorf("check public id: %w", err)
		}
	}
	return "", fmt.Errorf("failed to generate unique public id after 10 attempts")
}

func randomPublicID() (string, error) {
	// USR followed by a 5-digit number
	max := big.NewInt(90000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("random int: %w", err)
	}
	return fmt.Sprintf("USR%d", n.Int64()+10000), nil
}
