// Package security contains core domain types for the security system.
//
// It defines the Sensor model together with the SensorType, ArmingStatus and
// AlarmStatus enumerations, plus Clone helpers to avoid leaking internal
// references out of repositories.
package security
