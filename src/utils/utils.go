package utils

import (
	"fmt"
	"strconv"
	"strings"

	"monovator/src/elev"
	"monovator/src/types"
)

// PrintStatus overwrites the status line on the terminal.
func PrintStatus(state types.CarState, lamps string) {
	fmt.Printf("\r%s | lamps %s   ", elev.FormatState(state), lamps)
}

// ParseFloors parses a comma separated list such as "3,1,5".
func ParseFloors(s string) ([]int, error) {
	var floors []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		floor, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("parse floor %q: %w", field, err)
		}
		floors = append(floors, floor)
	}
	return floors, nil
}
