// Package source speaks to the external damage meter at its export
// boundary. The meter records fights on its own schedule; fightlog only
// ever reads the result.
package source

import "errors"

// ErrUnavailable is returned when the meter's export cannot be found at
// all. Callers report it once and stop trying; fightlog never validates or
// repairs the meter itself.
var ErrUnavailable = errors.New("telemetry source unavailable")

// Segment is one recorded attempt window. An empty Name marks an unnamed
// trash segment the capture pass must ignore. Records maps actor display
// name to ability id to the meter's fixed-width positional counter array.
type Segment struct {
	Name     string
	Duration float64
	Records  map[string]map[string][]float64
}

// Export is one full read of the meter's data.
type Export struct {
	Segments     []Segment
	AbilityNames map[string]string
}

// Source reads the meter's current export.
type Source interface {
	Read() (*Export, error)
	Name() string
}
