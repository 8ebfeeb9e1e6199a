package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/ifund-app/ifund/internal/config"
	"github.com/ifund-app/ifund/internal/domain"
	"github.com/ifund-app/ifund/internal/repository"
)

// CodePolicy is one named configuration of the activation-code registry.
// The short admin policy favours quantity; the long user-facing policy
// favours brute-force resistance. Both stay distinct on purpose.
type CodePolicy struct {
	Name   string
	Prefix string
	Length int
}

var (
	PolicyUser  = CodePolicy{Name: "user", Prefix: config.UserCodePrefix, Length: config.UserCodeLength}
	PolicyAdmin = CodePolicy{Name: "admin", Prefix: config.AdminCodePrefix, Length: config.AdminCodeLength}
)

// PolicyByName resolves a policy name from channel input.
func PolicyByName(name string) (CodePolicy, bool) {
	switch name {
	case PolicyUser.Name, "":
		return PolicyUser, true
	case PolicyAdmin.Name:
		return PolicyAdmin, true
	}
	return CodePolicy{}, false
}

type CodeService struct {
	queries *repository.Queries
}

func NewCodeService(queries *repository.Queries) *CodeService {
	return &CodeService{queries: queries}
}

// Generate issues count fresh activation codes under the given policy.
// Collisions with issued codes, or duplicates within the batch itself,
// are re-sampled; persistent collision fails with ErrExhaustedKeyspace.
func (s *CodeService) Generate(ctx context.Context, policy CodePolicy, count int) ([]string, error) {
	codes := make([]string, 0, count)
	batch := make(map[string]struct{}, count)

	exists := func(ctx context.Context, code string) (bool, error) {
		if _, ok := batch[code]; ok {
			return true, nil
		}
		return s.queries.ActivationCodeExists(ctx, code)
	}

	for i := 0; i < count; i++ {
		code, err := generateUniqueCode(ctx, policy, exists)
		if err != nil {
			return nil, err
		}
		if err := s.queries.CreateActivationCode(ctx, code); err != nil {
			return nil, fmt.Errorf("create activation code: %w", err)
		}
		batch[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes, nil
}

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

type codeExistsFunc func(ctx context.Context, code string) (bool, error)

// generateUniqueCode re-samples until exists reports a free code,
// bounded by CodeGenMaxAttempts.
func generateUniqueCode(ctx context.Context, policy CodePolicy, exists codeExistsFunc) (string, error) {
	for i := 0; i < config.CodeGenMaxAttempts; i++ {
		code, err := randomCode(policy)
		if err != nil {
			return "", err
		}
		taken, err := exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check code: %w", err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", domain.ErrExhaustedKeyspace
}

func randomCode(policy CodePolicy) (string, error) {
	suffix := make([]byte, policy.Length)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeCharset))))
		if err != nil {
			return "", fmt.Errorf("random int: %w", err)
		}
		suffix[i] = codeCharset[n.Int64()]
	}
	return policy.Prefix + string(suffix), nil
}
