package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
	// ErrorTypeNetwork represents page fetch errors
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeExtraction represents AI extraction errors
	ErrorTypeExtraction ErrorType = "extraction"
	// ErrorTypePersistence represents history persistence errors
	ErrorTypePersistence ErrorType = "persistence"
	// ErrorTypeNotification represents notifier errors
	ErrorTypeNotification ErrorType = "notification"
)

// TrackerError represents a tracker-specific error
type TrackerError struct {
	Type      ErrorType
	Component string
	Message   string
	Err       error
	Time      time.Time
}

// Error implements the error interface
func (e *TrackerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Component, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Component, e.Message)
}

// Unwrap returns the underlying error
func (e *TrackerError) Unwrap() error {
	return e.Err
}

// IsFatal returns true if the error must abort the run. Only configuration
// errors are fatal; per-item errors degrade that item and the run continues.
func (e *TrackerError) IsFatal() bool {
	return e.Type == ErrorTypeConfiguration
}

// New creates a new TrackerError
func New(errType ErrorType, component, message string, err error) *TrackerError {
	return &TrackerError{
		Type:      errType,
		Component: component,
		Message:   message,
		Err:       err,
		Time:      time.Now(),
	}
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *TrackerError {
	return New(ErrorTypeConfiguration, "config", message, err)
}

// NewNetwork creates a new fetch error
func NewNetwork(component, message string, err error) *TrackerError {
	return New(ErrorTypeNetwork, component, message, err)
}

// NewExtraction creates a new extraction error
func NewExtraction(component, message string, err error) *TrackerError {
	return New(ErrorTypeExtraction, component, message, err)
}

// NewPersistence creates a new persistence error
func NewPersistence(component, message string, err error) *TrackerError {
	return New(ErrorTypePersistence, component, message, err)
}

// NewNotification creates a new notification error
func NewNotification(component, message string, err error) *TrackerError {
	return New(ErrorTypeNotification, component, message, err)
}
