package security

import "strings"

// ArmingStatus describes whether the system is disarmed or armed, and in
// which profile.
type ArmingStatus string

const (
	// Disarmed means the system ignores sensor activity entirely.
	Disarmed ArmingStatus = "DISARMED"
	// ArmedHome arms the system for occupants at home; cat detection is
	// an alarm trigger only in this profile.
	ArmedHome ArmingStatus = "ARMED_HOME"
	// ArmedAway arms the system for an empty home.
	ArmedAway ArmingStatus = "ARMED_AWAY"
)

// AlarmStatus is the three-level escalation state of the system.
type AlarmStatus string

const (
	// NoAlarm means nothing suspicious has been observed.
	NoAlarm AlarmStatus = "NO_ALARM"
	// PendingAlarm means a first sensor fired while armed; a second
	// trigger escalates to Alarm.
	PendingAlarm AlarmStatus = "PENDING_ALARM"
	// Alarm is the fully escalated state. Sensor changes no longer
	// affect it.
	Alarm AlarmStatus = "ALARM"
)

// String returns the canonical storage form of the arming status.
func (s ArmingStatus) String() string {
	return string(s)
}

// Armed reports whether the status is one of the armed profiles.
func (s ArmingStatus) Armed() bool {
	return s == ArmedHome || s == ArmedAway
}

// String returns the canonical storage form of the alarm status.
func (s AlarmStatus) String() string {
	return string(s)
}

// ParseArmingStatus converts string input to an ArmingStatus.
func ParseArmingStatus(s string) (ArmingStatus, bool) {
	switch normalizeEnumInput(s) {
	case "DISARMED":
		return Disarmed, true
	case "ARMED_HOME", "HOME":
		return ArmedHome, true
	case "ARMED_AWAY", "AWAY":
		return ArmedAway, true
	default:
		return Disarmed, false
	}
}

// ParseAlarmStatus converts string input to an AlarmStatus.
func ParseAlarmStatus(s string) (AlarmStatus, bool) {
	switch normalizeEnumInput(s) {
	case "NO_ALARM":
		return NoAlarm, true
	case "PENDING_ALARM", "PENDING":
		return PendingAlarm, true
	case "ALARM":
		return Alarm, true
	default:
		return NoAlarm, false
	}
}

// normalizeEnumInput maps free-form CLI or storage input onto the canonical
// upper-snake enum spelling.
func normalizeEnumInput(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))

	return strings.ReplaceAll(strings.ReplaceAll(s, "-", "_"), " ", "_")
}
