package services

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"
	"nightlock/internal/challenge"
	"nightlock/internal/models"
	"nightlock/internal/providers"
	"nightlock/internal/storage"
	"nightlock/internal/structures"
)

const (
	TriggerBedtime  = "bedtime"
	TriggerManual   = "manual"
	TriggerRecovery = "recovery"

	CauseWake      = "wake"
	CauseChallenge = "challenge"
)

const (
	phraseMismatchMsg = "Phrase does not match. Type it exactly as shown."
	wrongAnswerMsg    = "Wrong answer. Try again with a new problem."
)

// DisplayHook lets the host environment react to lockdown transitions, e.g.
// by entering an exclusive display mode. It is best-effort only; the
// challenge sequence itself is the enforcement mechanism.
type DisplayHook interface {
	EnterExclusive()
	ExitExclusive()
}

type noopDisplayHook struct{}

func (noopDisplayHook) EnterExclusive() {}
func (noopDisplayHook) ExitExclusive()  {}

func NewDisplayHook() DisplayHook {
	return noopDisplayHook{}
}

type LockdownServiceInterface interface {
	Restore() error
	Tick(now time.Time)
	ManualActivate() *models.SessionView
	SubmitPhrase(text string) *models.SessionView
	RequestAdvance() *models.SessionView
	SubmitAnswer(answer int) *models.SessionView
	Session() *models.SessionView
	Schedule() models.Schedule
	UpdateSchedule(sch models.Schedule) error
	IsLockdown() bool
	Persist() error
}

// LockdownService owns the lockdown session and applies every transition
// under one mutex, so the 1 Hz tick and user actions never interleave
// mid-transition. Each transition is written through to the store before
// the mutex is released.
type LockdownService struct {
	mu       sync.Mutex
	conf     *structures.Config
	logger   providers.Logger
	store    storage.Store
	streak   StreakServiceInterface
	gen      *challenge.Generator
	metrics  providers.MetricsProviderInterface
	display  DisplayHook
	schedule models.Schedule
	session  *models.LockdownSession
	active   atomic.Bool
}

func NewLockdownService(
	conf *structures.Config,
	logger providers.Logger,
	store storage.Store,
	streak StreakServiceInterface,
	gen *challenge.Generator,
	metrics providers.MetricsProviderInterface,
	display DisplayHook,
) LockdownServiceInterface {
	return &LockdownService{
		conf:    conf,
		logger:  logger,
		store:   store,
		streak:  streak,
		gen:     gen,
		metrics: metrics,
		display: display,
	}
}

// Tick is the single time-based entry point, driven by the scheduler at
// one-second resolution. The wake-time check runs before anything else so
// a wake match always releases the session atomically with respect to the
// same tick, whatever step the user is stuck on.
func (ls *LockdownService) Tick(now time.Time) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if ls.session != nil && ls.session.Active {
		if ls.schedule.IsWakeTime(now) {
			ls.streak.MarkCompleted(models.DateKey(now))
			ls.releaseLocked(CauseWake)
			return
		}
		if ls.session.Step == models.StepWait && ls.session.WaitRemaining > 0 {
			ls.session.WaitRemaining--
			ls.persistSessionLocked()
		}
		return
	}

	if ls.schedule.AutoLock && ls.schedule.IsBedtime(now) {
		ls.activateLocked(TriggerBedtime)
	}
}

func (ls *LockdownService) ManualActivate() *models.SessionView {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.activateLocked(TriggerManual)
	return ls.session.View()
}

func (ls *LockdownService) activateLocked(trigger string) {
	if ls.session != nil && ls.session.Active {
		return
	}
	ls.session = &models.LockdownSession{
		ID:     uuid.NewString(),
		Active: true,
		Step:   models.StepPhrase,
		Phrase: ls.gen.PickPhrase(),
	}
	ls.active.Store(true)
	ls.persistSessionLocked()
	ls.metrics.IncActivations(trigger)
	ls.metrics.SetLockdownActive(true)
	ls.display.EnterExclusive()
	ls.logger.Infof(providers.TypeApp, "Lockdown activated (%s), session %s", trigger, ls.session.ID)
}

func (ls *LockdownService) releaseLocked(cause string) {
	id := ls.session.ID
	ls.session.Active = false
	ls.session.Step = models.StepNone
	ls.session.LastError = ""
	ls.active.Store(false)
	ls.persistSessionLocked()
	ls.session = nil
	ls.metrics.IncReleases(cause)
	ls.metrics.SetLockdownActive(false)
	ls.display.ExitExclusive()
	ls.logger.Infof(providers.TypeApp, "Lockdown released (%s), session %s", cause, id)
}

func normalizePhrase(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (ls *LockdownService) SubmitPhrase(text string) *models.SessionView {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if ls.session == nil || !ls.session.Active || ls.session.Step != models.StepPhrase {
		return ls.session.View()
	}

	if normalizePhrase(text) == normalizePhrase(ls.session.Phrase) {
		ls.session.Step = models.StepWait
		ls.session.WaitRemaining = ls.conf.Challenge.WaitSeconds
		ls.session.LastError = ""
		ls.metrics.IncUnlockAttempts(models.StepPhrase.String(), "pass")
	} else {
		ls.session.LastError = phraseMismatchMsg
		ls.metrics.IncUnlockAttempts(models.StepPhrase.String(), "fail")
	}
	ls.persistSessionLocked()
	return ls.session.View()
}

// RequestAdvance moves from the wait step to the math step. An advance while
// the countdown is still running is rejected as a silent no-op: the UI
// disables the action, but the machine must not trust that.
func (ls *LockdownService) RequestAdvance() *models.SessionView {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if ls.session == nil || !ls.session.Active || ls.session.Step != models.StepWait {
		return ls.session.View()
	}
	if ls.session.WaitRemaining > 0 {
		return ls.session.View()
	}

	ls.session.Step = models.StepMath
	ls.session.Math = ls.gen.Math()
	ls.session.LastError = ""
	ls.persistSessionLocked()
	return ls.session.View()
}

// SubmitAnswer checks the arithmetic step. A wrong answer keeps the session
// in the math step but discards the challenge and draws a fresh one; the
// same problem is never retried. A correct answer releases the lockdown
// without recording the night as completed — only the wake-time release
// counts as a successful night.
func (ls *LockdownService) SubmitAnswer(answer int) *models.SessionView {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if ls.session == nil || !ls.session.Active || ls.session.Step != models.StepMath || ls.session.Math == nil {
		return ls.session.View()
	}

	if answer == ls.session.Math.Answer {
		ls.metrics.IncUnlockAttempts(models.StepMath.String(), "pass")
		ls.releaseLocked(CauseChallenge)
		return ls.session.View()
	}

	ls.session.LastError = wrongAnswerMsg
	ls.session.Math = ls.gen.Math()
	ls.metrics.IncUnlockAttempts(models.StepMath.String(), "fail")
	ls.persistSessionLocked()
	return ls.session.View()
}

func (ls *LockdownService) Session() *models.SessionView {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.session.View()
}

func (ls *LockdownService) Schedule() models.Schedule {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.schedule
}

// UpdateSchedule applies a settings edit. Validation happens at the settings
// boundary; the machine sees the new schedule on the next tick.
func (ls *LockdownService) UpdateSchedule(sch models.Schedule) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.schedule = sch
	ls.persistScheduleLocked()
	return nil
}

func (ls *LockdownService) IsLockdown() bool {
	return ls.active.Load()
}

// Restore loads the schedule and any in-flight session from the store. A
// persisted lockdown with a malformed session resumes as a brand-new phrase
// step rather than as INACTIVE: losing challenge progress is acceptable,
// corruption silently granting unlock is not.
func (ls *LockdownService) Restore() error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	ls.schedule = ls.defaultSchedule()
	if err := ls.restoreScheduleLocked(); err != nil {
		return err
	}

	raw, ok, err := ls.store.Get(storage.KeyIsLockdown)
	if err != nil {
		return err
	}
	if !ok || raw != "true" {
		return nil
	}

	session, err := ls.loadSessionLocked()
	if err != nil {
		ls.logger.Warnf(providers.TypeApp, "Corrupt lockdown session (%s), starting fresh challenge", err)
		ls.activateLocked(TriggerRecovery)
		return nil
	}

	ls.session = session
	ls.active.Store(true)
	ls.metrics.SetLockdownActive(true)
	ls.display.EnterExclusive()
	ls.logger.Infof(providers.TypeApp, "Resumed lockdown session %s at step %s", session.ID, session.Step)
	return nil
}

func (ls *LockdownService) defaultSchedule() models.Schedule {
	bedtime, _ := models.ParseTimeOfDay(ls.conf.Schedule.Bedtime)
	wakeTime, _ := models.ParseTimeOfDay(ls.conf.Schedule.WakeTime)
	return models.Schedule{
		Bedtime:  bedtime,
		WakeTime: wakeTime,
		AutoLock: ls.conf.Schedule.AutoLock,
	}
}

func (ls *LockdownService) restoreScheduleLocked() error {
	if raw, ok, err := ls.store.Get(storage.KeyBedtime); err != nil {
		return err
	} else if ok {
		if t, err := models.ParseTimeOfDay(raw); err != nil {
			ls.logger.Warnf(providers.TypeApp, "Stored bedtime %q invalid, keeping default", raw)
		} else {
			ls.schedule.Bedtime = t
		}
	}
	if raw, ok, err := ls.store.Get(storage.KeyWakeTime); err != nil {
		return err
	} else if ok {
		if t, err := models.ParseTimeOfDay(raw); err != nil {
			ls.logger.Warnf(providers.TypeApp, "Stored wake time %q invalid, keeping default", raw)
		} else {
			ls.schedule.WakeTime = t
		}
	}
	if raw, ok, err := ls.store.Get(storage.KeyAutoLock); err != nil {
		return err
	} else if ok {
		ls.schedule.AutoLock = raw == "true"
	}
	return nil
}

type sessionFieldError struct{ field string }

func (e *sessionFieldError) Error() string { return "missing or malformed " + e.field }

func (ls *LockdownService) loadSessionLocked() (*models.LockdownSession, error) {
	get := func(key string) string {
		val, _, _ := ls.store.Get(key)
		return val
	}

	stepRaw := get(storage.KeyUnlockStep)
	step, err := models.ParseStep(stepRaw)
	if err != nil || step == models.StepNone {
		return nil, &sessionFieldError{field: storage.KeyUnlockStep}
	}

	phrase := get(storage.KeyUnlockPhrase)
	if phrase == "" {
		return nil, &sessionFieldError{field: storage.KeyUnlockPhrase}
	}

	session := &models.LockdownSession{
		ID:     get(storage.KeySessionID),
		Active: true,
		Step:   step,
		Phrase: phrase,
	}
	if session.ID == "" {
		session.ID = uuid.NewString()
	}

	if step == models.StepWait {
		remaining, err := strconv.Atoi(get(storage.KeyWaitRemaining))
		if err != nil || remaining < 0 || remaining > ls.conf.Challenge.WaitSeconds {
			return nil, &sessionFieldError{field: storage.KeyWaitRemaining}
		}
		session.WaitRemaining = remaining
	}

	if step == models.StepMath {
		question := get(storage.KeyMathQuestion)
		answer, err := strconv.Atoi(get(storage.KeyMathAnswer))
		if question == "" || err != nil {
			return nil, &sessionFieldError{field: storage.KeyMathQuestion}
		}
		session.Math = &models.MathChallenge{Question: question, Answer: answer}
	}

	return session, nil
}

func (ls *LockdownService) Persist() error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.persistScheduleLocked()
	ls.persistSessionLocked()
	return nil
}

func (ls *LockdownService) persistScheduleLocked() {
	ls.set(storage.KeyBedtime, ls.schedule.Bedtime.String())
	ls.set(storage.KeyWakeTime, ls.schedule.WakeTime.String())
	ls.set(storage.KeyAutoLock, strconv.FormatBool(ls.schedule.AutoLock))
}

func (ls *LockdownService) persistSessionLocked() {
	if ls.session == nil || !ls.session.Active {
		ls.set(storage.KeyIsLockdown, "false")
		ls.set(storage.KeyUnlockStep, models.StepNone.String())
		ls.set(storage.KeyUnlockPhrase, "")
		ls.set(storage.KeyWaitRemaining, "0")
		ls.set(storage.KeyMathQuestion, "")
		ls.set(storage.KeyMathAnswer, "")
		return
	}

	ls.set(storage.KeyIsLockdown, "true")
	ls.set(storage.KeySessionID, ls.session.ID)
	ls.set(storage.KeyUnlockStep, ls.session.Step.String())
	ls.set(storage.KeyUnlockPhrase, ls.session.Phrase)
	ls.set(storage.KeyWaitRemaining, strconv.Itoa(ls.session.WaitRemaining))
	if ls.session.Math != nil {
		ls.set(storage.KeyMathQuestion, ls.session.Math.Question)
		ls.set(storage.KeyMathAnswer, strconv.Itoa(ls.session.Math.Answer))
	} else {
		ls.set(storage.KeyMathQuestion, "")
		ls.set(storage.KeyMathAnswer, "")
	}
}

// set is write-through with no transaction; a failed write is logged and
// the machine carries on with its in-memory state.
func (ls *LockdownService) set(key, value string) {
	if err := ls.store.Set(key, value); err != nil {
		ls.logger.Errorf(providers.TypeApp, "Cannot persist %s: %s", key, err)
	}
}
