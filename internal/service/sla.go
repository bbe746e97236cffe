package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/decomontenegro/truelabel-sub001/internal/domain"
)

// EstimateMode controls how a requester's estimated duration combines with
// the priority window.
type EstimateMode string

const (
	EstimateCap      EstimateMode = "cap"
	EstimateOverride EstimateMode = "override"
	EstimateIgnore   EstimateMode = "ignore"
)

func ParseEstimateMode(s string) (EstimateMode, error) {
	switch m := EstimateMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return EstimateCap, nil
	case EstimateCap, EstimateOverride, EstimateIgnore:
		return m, nil
	default:
		return "", fmt.Errorf("%w: unknown estimate mode %q", domain.ErrValidation, s)
	}
}

const (
	// MaxEstimatedHours bounds a requester's estimate to one year.
	MaxEstimatedHours = 8760

	// MinWindow keeps dueDate strictly after createdAt at the store's
	// millisecond precision.
	MinWindow = time.Millisecond
)

// SLAPolicy maps a priority to the window an entry has before it is overdue.
type SLAPolicy struct {
	Base map[domain.Priority]time.Duration
	Mode EstimateMode
}

func DefaultSLAPolicy() SLAPolicy {
	return SLAPolicy{
		Base: map[domain.Priority]time.Duration{
			domain.PriorityHigh:   24 * time.Hour,
			domain.PriorityMedium: 72 * time.Hour,
			domain.PriorityNormal: 120 * time.Hour,
			domain.PriorityLow:    240 * time.Hour,
		},
		Mode: EstimateCap,
	}
}

// Window returns the SLA window for priority. estimate is in hours; values
// outside (0, MaxEstimatedHours] are clamped or ignored. The result is whole
// milliseconds and never shorter than MinWindow.
func (p SLAPolicy) Window(priority domain.Priority, estimate *float64) time.Duration {
	base, ok := p.Base[priority]
	if !ok || base <= 0 {
		base = DefaultSLAPolicy().Base[domain.PriorityNormal]
	}

	window := base
	if estimate != nil && *estimate > 0 && !math.IsNaN(*estimate) {
		est := time.Duration(math.Min(*estimate, MaxEstimatedHours) * float64(time.Hour))
		switch p.Mode {
		case EstimateOverride:
			window = est
		case EstimateIgnore:
		default:
			if est < base {
				window = est
			}
		}
	}

	window = window.Truncate(time.Millisecond)
	if window < MinWindow {
		return MinWindow
	}
	return window
}

func (p SLAPolicy) DueDate(createdAt time.Time, priority domain.Priority, estimate *float64) time.Time {
	return createdAt.Add(p.Window(priority, estimate))
}
