package service

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ifund-app/ifund/internal/config"
	"github.com/ifund-app/ifund/internal/domain"
)

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestRandomChallengeDeterministic(t *testing.T) {
	a := randomChallenge(testRand(7))
	b := randomChallenge(testRand(7))
	require.Equal(t, a, b)
}

func TestGeneratorsProduceValidChallenges(t *testing.T) {
	for _, g := range generators {
		t.Run(g.kind, func(t *testing.T) {
			for seed := uint64(1); seed <= 50; seed++ {
				ch := g.gen(testRand(seed))
				require.NotEmpty(t, ch.Question)
				require.NotEmpty(t, ch.Answer)
				require.GreaterOrEqual(t, ch.Reward, int64(config.TaskRewardMin))
				require.LessOrEqual(t, ch.Reward, int64(config.TaskRewardMax))
				require.True(t, domain.CheckAnswer(ch.Answer, ch.Answer))
			}
		})
	}
}

func TestGenBigAddArithmetic(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		ch := genBigAdd(testRand(seed))

		var a, b int
		_, err := fmt.Sscanf(ch.Question, "%d + %d", &a, &b)
		require.NoError(t, err)

		want, err := strconv.Atoi(ch.Answer)
		require.NoError(t, err)
		require.Equal(t, want, a+b)
	}
}

func TestGenBigSubNeverNegative(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		ch := genBigSub(testRand(seed))
		answer, err := strconv.Atoi(ch.Answer)
		require.NoError(t, err)
		require.GreaterOrEqual(t, answer, 0)
	}
}

func TestGenDivideIsClean(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		ch := genDivide(testRand(seed))

		parts := strings.Split(ch.Question, " ÷ ")
		require.Len(t, parts, 2)
		dividend, err := strconv.Atoi(parts[0])
		require.NoError(t, err)
		divisor, err := strconv.Atoi(parts[1])
		require.NoError(t, err)

		answer, err := strconv.Atoi(ch.Answer)
		require.NoError(t, err)
		require.Equal(t, 0, dividend%divisor)
		require.Equal(t, answer, dividend/divisor)
	}
}

func TestGenLogicCountsEvens(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		ch := genLogic(testRand(seed))

		listing := strings.TrimPrefix(ch.Question, "Count the even numbers only: ")
		even := 0
		for _, part := range strings.Split(listing, ", ") {
			n, err := strconv.Atoi(part)
			require.NoError(t, err)
			require.GreaterOrEqual(t, n, 1)
			require.LessOrEqual(t, n, 29)
			if n%2 == 0 {
				even++
			}
		}
		require.Equal(t, strconv.Itoa(even), ch.Answer)
	}
}

func TestGenColorAnswerInSequence(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		ch := genColor(testRand(seed))
		require.Contains(t, colorNames, ch.Answer)
		require.Contains(t, ch.Question, ch.Answer)
	}
}
