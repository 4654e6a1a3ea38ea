package config

import (
	"fmt"
	"time"
)

// TimeLayout is the timestamp format used in config files and flat-file
// output, local market time (NEM has no daylight saving).
const TimeLayout = "2006-01-02 15:04:05"

// StudyConfig describes the sample: region, window and the unit panel.
type StudyConfig struct {
	// Region is the NEM region, e.g. SA1.
	Region string `json:"region"`
	// Start and End bound the study window, inclusive, format TimeLayout.
	Start string `json:"start"`
	End   string `json:"end"`
	// DUIDs is the set of units in the sample.
	DUIDs []string `json:"duids"`
	// Batteries is the subset of DUIDs treated as battery units.
	Batteries []string `json:"batteries"`
}

// Window returns the parsed study window.
func (c StudyConfig) Window() (time.Time, time.Time, error) {
	start, err := time.Parse(TimeLayout, c.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse study start: %w", err)
	}
	end, err := time.Parse(TimeLayout, c.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse study end: %w", err)
	}
	return start, end, nil
}

// BatterySet returns the battery DUIDs as a lookup set.
func (c StudyConfig) BatterySet() map[string]bool {
	set := make(map[string]bool, len(c.Batteries))
	for _, d := range c.Batteries {
		set[d] = true
	}
	return set
}

// Validate checks mandatory fields and window ordering.
func (c StudyConfig) Validate() error {
	if c.Region == "" {
		return fmt.Errorf("study region is required")
	}
	if len(c.DUIDs) == 0 {
		return fmt.Errorf("study duids is required")
	}
	start, end, err := c.Window()
	if err != nil {
		return err
	}
	if !start.Before(end) {
		return fmt.Errorf("study start %s is not before end %s", c.Start, c.End)
	}
	duids := make(map[string]bool, len(c.DUIDs))
	for _, d := range c.DUIDs {
		if duids[d] {
			return fmt.Errorf("duplicate duid %s", d)
		}
		duids[d] = true
	}
	for _, b := range c.Batteries {
		if !duids[b] {
			return fmt.Errorf("battery %s is not in duids", b)
		}
	}
	return nil
}
