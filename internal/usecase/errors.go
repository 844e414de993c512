package usecase

import "errors"

var (
	ErrInternal          = errors.New("internal error")
	ErrInvalidInput      = errors.New("invalid input")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrSkillProfileEmpty = errors.New("skill profile empty")
	ErrJobNotFound       = errors.New("job not found")
	ErrNoJobsFound       = errors.New("no jobs found")
)
