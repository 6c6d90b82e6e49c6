package controllers

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
	"nightlock/internal/models"
	"nightlock/internal/providers"
	"nightlock/internal/services"
)

const maxRequestBodySize = 64 << 10 // 64 KB

type ApiController struct {
	logger  providers.Logger
	service services.LockdownServiceInterface
	streak  services.StreakServiceInterface
	cache   providers.CacheProviderInterface
}

func NewApiController(
	logger providers.Logger,
	service services.LockdownServiceInterface,
	streak services.StreakServiceInterface,
	cache providers.CacheProviderInterface,
) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		streak:  streak,
		cache:   cache,
	}
}

type statusResponse struct {
	Greeting     string              `json:"greeting"`
	Time         string              `json:"time"`
	Bedtime      string              `json:"bedtime"`
	WakeTime     string              `json:"wake_time"`
	AutoLock     bool                `json:"auto_lock"`
	UntilBedtime untilBedtime        `json:"until_bedtime"`
	Session      *models.SessionView `json:"session"`
}

type untilBedtime struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

type streakResponse struct {
	Current  int             `json:"current"`
	Best     int             `json:"best"`
	Benefits models.Benefits `json:"benefits"`
}

type phraseRequest struct {
	Text string `json:"text"`
}

type answerRequest struct {
	Answer *int `json:"answer"`
}

type toggleRequest struct {
	Date string `json:"date"`
}

type settingsRequest struct {
	Bedtime  string `json:"bedtime" validate:"required"`
	WakeTime string `json:"wake_time" validate:"required"`
	AutoLock bool   `json:"auto_lock"`
}

func (ac *ApiController) writeJSON(w http.ResponseWriter, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	return true
}

func greeting(now time.Time) string {
	switch {
	case now.Hour() < 12:
		return "Good morning"
	case now.Hour() < 17:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

func (ac *ApiController) Status(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	sch := ac.service.Schedule()
	hours, minutes := sch.UntilBedtime(now)

	ac.writeJSON(w, statusResponse{
		Greeting:     greeting(now),
		Time:         now.Format("15:04:05"),
		Bedtime:      sch.Bedtime.String(),
		WakeTime:     sch.WakeTime.String(),
		AutoLock:     sch.AutoLock,
		UntilBedtime: untilBedtime{Hours: hours, Minutes: minutes},
		Session:      ac.service.Session(),
	})
}

func (ac *ApiController) Activate(w http.ResponseWriter, r *http.Request) {
	ac.writeJSON(w, ac.service.ManualActivate())
}

func (ac *ApiController) SubmitPhrase(w http.ResponseWriter, r *http.Request) {
	var req phraseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	ac.writeJSON(w, ac.service.SubmitPhrase(req.Text))
}

func (ac *ApiController) Advance(w http.ResponseWriter, r *http.Request) {
	ac.writeJSON(w, ac.service.RequestAdvance())
}

func (ac *ApiController) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Answer == nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ac.writeJSON(w, ac.service.SubmitAnswer(*req.Answer))
}

func (ac *ApiController) GetStreak(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "streak", func() (any, error) {
		now := time.Now()
		state := ac.streak.State(now)
		return streakResponse{
			Current:  state.Current,
			Best:     state.Best,
			Benefits: ac.streak.Benefits(now),
		}, nil
	})
}

func (ac *ApiController) GetCalendar(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "calendar", func() (any, error) {
		return ac.streak.Week(time.Now()), nil
	})
}

func (ac *ApiController) ToggleDay(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if _, err := time.Parse(models.DateFormat, req.Date); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ac.streak.Toggle(req.Date)
	// The cached read responses are stale now; drop them so the next
	// GET recomputes instead of serving the pre-toggle strip.
	ac.cache.Del("streak")
	ac.cache.Del("calendar")
	ac.writeJSON(w, ac.streak.Week(time.Now()))
}

// UpdateSettings is the settings boundary: time-of-day values are validated
// here so the core only ever sees well-formed schedules.
func (ac *ApiController) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	v := validate.Struct(&req)
	if !v.Validate() {
		http.Error(w, v.Errors.One(), http.StatusBadRequest)
		return
	}

	bedtime, err := models.ParseTimeOfDay(req.Bedtime)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	wakeTime, err := models.ParseTimeOfDay(req.WakeTime)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	sch := models.Schedule{Bedtime: bedtime, WakeTime: wakeTime, AutoLock: req.AutoLock}
	if err := ac.service.UpdateSchedule(sch); err != nil {
		ac.logger.Errorf(providers.TypePost, "Cannot update schedule: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	ac.writeJSON(w, sch)
}
