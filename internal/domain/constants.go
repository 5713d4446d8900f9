package domain

// Default configuration values
const (
	DefaultSlotMinutes           = 15
	DefaultVerificationTTLHours  = 72
	DefaultAutoAssignGraceHours  = 24
	DefaultAutoAssignIntervalMin = 5
)

// Business validation constants
const (
	RequestWindowMinutes     = 30 // visitors request half-hour windows
	MaxTeacherMessageLength  = 1000
	MaxFeedbackMessageLength = 2000
	MaxRoomLength            = 60
	MinPasswordLength        = 8
	VerificationTokenBytes   = 32
)

// Time and date format constants
const (
	// DateFormat is the display format slot and request dates carry ("24.03.2026").
	// Kept as a formatted string for compatibility with the existing schema.
	DateFormat = "02.01.2006"
	TimeFormat = "15:04" // HH:MM
)

// ValidSlotMinutes enumerates the supported slot granularities
var ValidSlotMinutes = []int{10, 15, 20, 30}

// IsValidSlotMinutes reports whether d is a supported slot granularity
func IsValidSlotMinutes(d int) bool {
	for _, v := range ValidSlotMinutes {
		if v == d {
			return true
		}
	}
	return false
}
