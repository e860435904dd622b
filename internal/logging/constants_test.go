package logging

import (
	"testing"
)

func TestConstants(t *testing.T) {
	if FieldFile == "" {
		t.Error("FieldFile constant should not be empty")
	}
	if FieldCount == "" {
		t.Error("FieldCount constant should not be empty")
	}
	if FieldRunID == "" {
		t.Error("FieldRunID constant should not be empty")
	}
	if FieldWindowStart == FieldWindowEnd {
		t.Error("window field names must differ")
	}
}
