package utils

import (
	"slices"
	"testing"
)

func TestParseFloors(t *testing.T) {
	floors, err := ParseFloors(" 3, 1,5,,-1 ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !slices.Equal(floors, []int{3, 1, 5, -1}) {
		t.Errorf("Expected [3 1 5 -1], got %v", floors)
	}
	if _, err := ParseFloors("3,two"); err == nil {
		t.Errorf("Expected error for non-numeric floor")
	}
}
