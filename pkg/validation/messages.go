package validation

import (
	"fmt"
	"strings"
)

const (
	MessageRequired = "This field is required"
	MessageEmail    = "Please enter a valid email"
	MessageNumber   = "Must be a number"
	MessageInteger  = "Must be a whole number"
	MessagePositive = "Must be a positive number"
	MessageBoolean  = "Must be true or false"
	MessageAccepted = "You must accept the terms and conditions"
	MessagePattern  = "Does not match the required format"

	MessageOutOfRange = "Number is out of range"
)

func messageOneOf(options []string) string {
	return "Must be one of: " + strings.Join(options, ", ")
}

func messageMin(value float64) string {
	return fmt.Sprintf("Must be at least %v", value)
}

func messageMax(value float64) string {
	return fmt.Sprintf("Must be at most %v", value)
}

func messageMinLength(value int) string {
	return fmt.Sprintf("Must be at least %d characters", value)
}

func messageMaxLength(value int) string {
	return fmt.Sprintf("Must be at most %d characters", value)
}
