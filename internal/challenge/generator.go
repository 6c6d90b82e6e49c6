package challenge

import (
	"fmt"
	"math/rand"
	"time"

	"nightlock/internal/models"
)

// Phrases is the fixed catalog the phrase step draws from. The draw is
// uniform and happens once per session; a resumed session keeps the phrase
// it already committed to.
var Phrases = []string{
	"I understand that staying up late will make tomorrow harder and I choose sleep",
	"My future self will thank me for going to bed now instead of later",
	"Sleep is more important than whatever I think I need to do right now",
	"I am making the responsible choice to prioritize my health and rest",
	"Nothing good happens after bedtime and I accept this truth tonight",
}

// Generator produces unlock challenges. It is stateless aside from its
// random source, which is injected so tests can drive it deterministically.
type Generator struct {
	rnd *rand.Rand
}

func NewGenerator(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

func NewDefaultGenerator() *Generator {
	return NewGenerator(rand.NewSource(time.Now().UnixNano()))
}

func (g *Generator) PickPhrase() string {
	return Phrases[g.rnd.Intn(len(Phrases))]
}

// Math draws a, b in [10, 59] and c in [5, 24] and returns the problem
// "a + b - c" with its exact integer answer.
func (g *Generator) Math() *models.MathChallenge {
	a := g.rnd.Intn(50) + 10
	b := g.rnd.Intn(50) + 10
	c := g.rnd.Intn(20) + 5
	return &models.MathChallenge{
		Question: fmt.Sprintf("%d + %d - %d", a, b, c),
		Answer:   a + b - c,
	}
}
