package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/chemlab-portal/booking-service/internal/domain"
	"github.com/chemlab-portal/booking-service/pkg/ptr"
)

// Среда, 15 октября 2025, 14:30 UTC
var wednesdayAfternoon = time.Date(2025, 10, 15, 14, 30, 0, 0, time.UTC)

// Воскресенье, 19 октября 2025, 10:00 UTC
var sundayMorning = time.Date(2025, 10, 19, 10, 0, 0, 0, time.UTC)

func TestEvaluate_NilSettings(t *testing.T) {
	decision := Evaluate(wednesdayAfternoon, nil)

	assert.False(t, decision.Allowed)
	assert.Equal(t, WindowNone, decision.Window)
	assert.NotEmpty(t, decision.Message)
}

func TestEvaluate_RegularWindow(t *testing.T) {
	tests := []struct {
		name        string
		now         time.Time
		settings    domain.BookingWindowSettings
		wantAllowed bool
		wantWindow  Window
		wantMessage string
	}{
		{
			name: "allowed on listed weekday",
			now:  sundayMorning,
			settings: domain.BookingWindowSettings{
				IsRegularBookingEnabled: true,
				RegularAllowedDays:      []string{"sunday"},
			},
			wantAllowed: true,
			wantWindow:  WindowRegular,
			wantMessage: "",
		},
		{
			name: "closed on unlisted weekday, settings message shown",
			now:  wednesdayAfternoon,
			settings: domain.BookingWindowSettings{
				IsRegularBookingEnabled: true,
				RegularAllowedDays:      []string{"sunday"},
				Message:                 "Booking opens every Sunday.",
			},
			wantAllowed: false,
			wantWindow:  WindowNone,
			wantMessage: "Booking opens every Sunday.",
		},
		{
			name: "closed when regular booking disabled",
			now:  sundayMorning,
			settings: domain.BookingWindowSettings{
				IsRegularBookingEnabled: false,
				RegularAllowedDays:      []string{"sunday"},
				Message:                 "Booking is suspended.",
			},
			wantAllowed: false,
			wantWindow:  WindowNone,
			wantMessage: "Booking is suspended.",
		},
		{
			name: "default closed message when settings message empty",
			now:  wednesdayAfternoon,
			settings: domain.BookingWindowSettings{
				IsRegularBookingEnabled: true,
				RegularAllowedDays:      []string{"sunday"},
			},
			wantAllowed: false,
			wantWindow:  WindowNone,
			wantMessage: defaultClosedMessage,
		},
		{
			name: "weekday match is case-insensitive",
			now:  sundayMorning,
			settings: domain.BookingWindowSettings{
				IsRegularBookingEnabled: true,
				RegularAllowedDays:      []string{"Sunday"},
			},
			wantAllowed: true,
			wantWindow:  WindowRegular,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Evaluate(tt.now, &tt.settings)

			assert.Equal(t, tt.wantAllowed, decision.Allowed)
			assert.Equal(t, tt.wantWindow, decision.Window)
			assert.Equal(t, tt.wantMessage, decision.Message)
		})
	}
}

func TestEvaluate_EmergencyWindow(t *testing.T) {
	windowStart := wednesdayAfternoon.Add(-2 * time.Hour)
	windowEnd := wednesdayAfternoon.Add(2 * time.Hour)

	baseSettings := func() domain.BookingWindowSettings {
		return domain.BookingWindowSettings{
			// Регулярное расписание закрыто в среду - проверяем именно экстренный путь
			IsRegularBookingEnabled: true,
			RegularAllowedDays:      []string{"sunday"},
			Message:                 "Regular booking is closed.",

			IsEmergencyBookingOpen: true,
			EmergencyBookingStart:  ptr.Ptr(windowStart),
			EmergencyBookingEnd:    ptr.Ptr(windowEnd),
			EmergencyAllowedDays:   []string{"wednesday"},
			EmergencyMessage:       "Emergency session: makeup labs this week.",
		}
	}

	t.Run("emergency overrides regular", func(t *testing.T) {
		settings := baseSettings()
		decision := Evaluate(wednesdayAfternoon, &settings)

		assert.True(t, decision.Allowed)
		assert.Equal(t, WindowEmergency, decision.Window)
		assert.Equal(t, "Emergency session: makeup labs this week.", decision.Message)
	})

	t.Run("outside time bounds falls through to regular check", func(t *testing.T) {
		settings := baseSettings()
		decision := Evaluate(windowEnd.Add(time.Minute), &settings)

		assert.False(t, decision.Allowed)
		assert.Equal(t, "Regular booking is closed.", decision.Message)
	})

	t.Run("weekday not in emergency list", func(t *testing.T) {
		settings := baseSettings()
		settings.EmergencyAllowedDays = []string{"friday"}

		decision := Evaluate(wednesdayAfternoon, &settings)

		assert.False(t, decision.Allowed)
	})

	t.Run("emergency flag without bounds is skipped", func(t *testing.T) {
		settings := baseSettings()
		settings.EmergencyBookingEnd = nil

		decision := Evaluate(wednesdayAfternoon, &settings)

		assert.False(t, decision.Allowed)
		assert.Equal(t, WindowNone, decision.Window)
	})

	t.Run("emergency closed flag is skipped even inside bounds", func(t *testing.T) {
		settings := baseSettings()
		settings.IsEmergencyBookingOpen = false

		decision := Evaluate(wednesdayAfternoon, &settings)

		assert.False(t, decision.Allowed)
	})

	t.Run("boundary instants are inclusive", func(t *testing.T) {
		settings := baseSettings()

		assert.True(t, Evaluate(windowStart, &settings).Allowed)
		assert.True(t, Evaluate(windowEnd, &settings).Allowed)
	})

	t.Run("emergency window on regular day still reports emergency message", func(t *testing.T) {
		settings := baseSettings()
		settings.EmergencyAllowedDays = []string{"sunday"}
		settings.EmergencyBookingStart = ptr.Ptr(sundayMorning.Add(-time.Hour))
		settings.EmergencyBookingEnd = ptr.Ptr(sundayMorning.Add(time.Hour))

		decision := Evaluate(sundayMorning, &settings)

		assert.True(t, decision.Allowed)
		assert.Equal(t, WindowEmergency, decision.Window)
		assert.Equal(t, settings.EmergencyMessage, decision.Message)
	})
}

func TestIsBookingAllowed(t *testing.T) {
	assert.False(t, IsBookingAllowed(wednesdayAfternoon, nil))

	settings := domain.BookingWindowSettings{
		IsRegularBookingEnabled: true,
		RegularAllowedDays:      []string{"wednesday"},
	}
	assert.True(t, IsBookingAllowed(wednesdayAfternoon, &settings))
}
