package service

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/ifund-app/ifund/internal/config"
)

// Challenge is one issued task: a prompt, the expected answer, and the
// reward (in points) already drawn from the generator's range.
type Challenge struct {
	Kind     string
	Question string
	Answer   string
	Reward   int64
}

// generators is the closed set of task variants. Each is a pure
// function of the injected source, so a fixed seed reproduces the exact
// challenge.
var generators = []struct {
	kind string
	gen  func(r *rand.Rand) Challenge
}{
	{"counting", genCounting},
	{"big_add", genBigAdd},
	{"big_sub", genBigSub},
	{"multiply", genMultiply},
	{"divide", genDivide},
	{"word", genWord},
	{"logic", genLogic},
	{"color", genColor},
}

// randomChallenge picks a variant and generates it from r.
func randomChallenge(r *rand.Rand) Challenge {
	g := generators[r.IntN(len(generators))]
	ch := g.gen(r)
	ch.Kind = g.kind
	return ch
}

func drawReward(r *rand.Rand) int64 {
	return config.TaskRewardMin + r.Int64N(config.TaskRewardMax-config.TaskRewardMin+1)
}

func numeric(n int) string {
	return strconv.Itoa(n)
}

func genCounting(r *rand.Rand) Challenge {
	a1 := 1 + r.IntN(9)
	a2 := 1 + r.IntN(9)
	return Challenge{
		Question: fmt.Sprintf(
			"There are %d apples, 2 bananas, and %d apples again. How many apples are there?",
			a1, a2,
		),
		Answer: numeric(a1 + a2),
		Reward: drawReward(r),
	}
}

func genBigAdd(r *rand.Rand) Challenge {
	a := 10000 + r.IntN(990000)
	b := 10000 + r.IntN(990000)
	return Challenge{
		Question: fmt.Sprintf("%d + %d", a, b),
		Answer:   numeric(a + b),
		Reward:   drawReward(r),
	}
}

func genBigSub(r *rand.Rand) Challenge {
	a := 100000 + r.IntN(900000)
	b := 10000 + r.IntN(a-10000+1)
	return Challenge{
		Question: fmt.Sprintf("%d - %d", a, b),
		Answer:   numeric(a - b),
		Reward:   drawReward(r),
	}
}

func genMultiply(r *rand.Rand) Challenge {
	a := 100 + r.IntN(900)
	b := 10 + r.IntN(90)
	return Challenge{
		Question: fmt.Sprintf("%d × %d", a, b),
		Answer:   numeric(a * b),
		Reward:   drawReward(r),
	}
}

// genDivide builds the dividend from the answer so the division is
// always clean.
func genDivide(r *rand.Rand) Challenge {
	b := 2 + r.IntN(19)
	answer := 10 + r.IntN(491)
	return Challenge{
		Question: fmt.Sprintf("%d ÷ %d", b*answer, b),
		Answer:   numeric(answer),
		Reward:   drawReward(r),
	}
}

func genWord(r *rand.Rand) Challenge {
	boxes := 5 + r.IntN(16)
	perBox := 50 + r.IntN(151)
	return Challenge{
		Question: fmt.Sprintf(
			"A warehouse has %d boxes. Each box contains %d items. How many items are there in total?",
			boxes, perBox,
		),
		Answer: numeric(boxes * perBox),
		Reward: drawReward(r),
	}
}

func genLogic(r *rand.Rand) Challenge {
	nums := r.Perm(29)[:6]
	even := 0
	parts := make([]string, len(nums))
	for i, n := range nums {
		n++ // shift range to 1..29
		parts[i] = strconv.Itoa(n)
		if n%2 == 0 {
			even++
		}
	}
	return Challenge{
		Question: "Count the even numbers only: " + strings.Join(parts, ", "),
		Answer:   numeric(even),
		Reward:   drawReward(r),
	}
}

var colorNames = []string{
	"red", "blue", "green", "yellow", "orange",
	"purple", "pink", "brown", "black", "white",
	"gray", "cyan", "magenta", "lime", "teal",
}

func genColor(r *rand.Rand) Challenge {
	perm := r.Perm(len(colorNames))[:6]
	sequence := make([]string, len(perm))
	for i, p := range perm {
		sequence[i] = colorNames[p]
	}
	index := 1 + r.IntN(6)
	return Challenge{
		Question: fmt.Sprintf(
			"Memorize the colors:\n%s\n\nWhat is color number %d?",
			strings.Join(sequence, ", "), index,
		),
		Answer: sequence[index-1],
		Reward: drawReward(r),
	}
}
