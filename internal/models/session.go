package models

import "fmt"

// Step is the unlock-challenge sub-state of a lockdown session.
type Step int

const (
	StepNone Step = iota
	StepPhrase
	StepWait
	StepMath
)

var stepNames = map[Step]string{
	StepNone:   "none",
	StepPhrase: "phrase",
	StepWait:   "wait",
	StepMath:   "math",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

func ParseStep(s string) (Step, error) {
	for step, name := range stepNames {
		if name == s {
			return step, nil
		}
	}
	return StepNone, fmt.Errorf("unknown step %q", s)
}

// MathChallenge is a generated arithmetic problem. A fresh one is drawn on
// every entry into the math step and after every wrong answer.
type MathChallenge struct {
	Question string `json:"question"`
	Answer   int    `json:"answer"`
}

// LockdownSession is one lockdown episode. At most one session is active
// at a time; the phrase is drawn once at activation and pinned for the
// whole session, including across process restarts.
type LockdownSession struct {
	ID            string
	Active        bool
	Step          Step
	Phrase        string
	WaitRemaining int
	Math          *MathChallenge
	LastError     string
}

// SessionView is the session as returned to the user-action boundary for
// immediate rendering. The math answer is never included.
type SessionView struct {
	Active        bool   `json:"active"`
	Step          string `json:"step"`
	Phrase        string `json:"phrase,omitempty"`
	WaitRemaining int    `json:"wait_remaining"`
	Question      string `json:"question,omitempty"`
	Error         string `json:"error,omitempty"`
}

func (ls *LockdownSession) View() *SessionView {
	if ls == nil || !ls.Active {
		return &SessionView{Active: false, Step: StepNone.String()}
	}
	v := &SessionView{
		Active:        true,
		Step:          ls.Step.String(),
		WaitRemaining: ls.WaitRemaining,
		Error:         ls.LastError,
	}
	if ls.Step == StepPhrase {
		v.Phrase = ls.Phrase
	}
	if ls.Step == StepMath && ls.Math != nil {
		v.Question = ls.Math.Question
	}
	return v
}
