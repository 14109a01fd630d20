package jiterrors

import (
	"errors"
	"strings"
)

// Execution (X) Errors
var (
	ErrAllocation  = errors.New("X1|AllocationError: The host could not provide a memory region for the generated code.")
	ErrPermission  = errors.New("X2|PermissionError: The host refused a permission transition of the code region.")
	ErrRegionState = errors.New("X3|RegionStateError: The requested operation is not allowed in the region's current state.")
)

var catalog = []error{ErrAllocation, ErrPermission, ErrRegionState}

// Lookup returns the catalog sentinel wrapped by err, or nil.
func Lookup(err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range catalog {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return nil
}

// GetErrorName extracts the error name from the error message.
func GetErrorName(err error) string {
	if err == nil {
		return "No Error"
	}
	errStr := err.Error()
	if sentinel := Lookup(err); sentinel != nil {
		errStr = sentinel.Error()
	}
	if !strings.Contains(errStr, "|") || !strings.Contains(errStr, ":") {
		return errStr
	}
	parts := strings.SplitN(errStr, "|", 2)
	// Split on ':' to separate the error name from its description.
	nameParts := strings.SplitN(parts[1], ":", 2)
	return strings.TrimSpace(nameParts[0])
}

// GetErrorCode extracts the error code from the error message.
func GetErrorCode(err error) string {
	if err == nil {
		return ""
	}
	errStr := err.Error()
	if sentinel := Lookup(err); sentinel != nil {
		errStr = sentinel.Error()
	}
	if !strings.Contains(errStr, "|") {
		return ""
	}
	parts := strings.SplitN(errStr, "|", 2)
	return strings.TrimSpace(parts[0])
}

// GetErrorCodeWithName returns the error code and name in the format "Code_ErrorName".
func GetErrorCodeWithName(err error) string {
	code := GetErrorCode(err)
	name := GetErrorName(err)
	if code == "" || name == "" {
		return ""
	}
	return code + "_" + name
}

// GetErrorDesc extracts the error description from the error message.
func GetErrorDesc(err error) string {
	if err == nil {
		return ""
	}
	errStr := err.Error()
	if sentinel := Lookup(err); sentinel != nil {
		errStr = sentinel.Error()
	}
	parts := strings.SplitN(errStr, ":", 2)
	if len(parts) < 2 {
		return "DESC NOT SET"
	}
	return strings.TrimSpace(parts[1])
}
