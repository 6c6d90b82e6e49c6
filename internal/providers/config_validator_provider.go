package providers

import (
	"fmt"
	"strings"

	"github.com/gookit/validate"
	"nightlock/internal/models"
	"nightlock/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	v.AddValidator("unixPath", func(val interface{}) bool {
		s, ok := val.(string)
		if !ok || s == "" {
			return false
		}
		return !strings.ContainsRune(s, 0)
	})

	if !v.Validate() {
		return v.Errors
	}

	if _, err := models.ParseTimeOfDay(cv.conf.Schedule.Bedtime); err != nil {
		return fmt.Errorf("schedule.bedtime: %w", err)
	}
	if _, err := models.ParseTimeOfDay(cv.conf.Schedule.WakeTime); err != nil {
		return fmt.Errorf("schedule.wakeTime: %w", err)
	}
	return nil
}
