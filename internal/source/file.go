package source

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// FileSource reads the meter's JSON export file. The export is positional
// and loosely typed: counters may arrive as ints, floats or nulls, and
// individual records may be malformed without the rest of the file being
// useless.
type FileSource struct {
	Path string
}

// NewFileSource creates a file-backed source.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (f *FileSource) Name() string { return "file:" + f.Path }

// rawExport is the expected JSON shape of the meter's export. Ability
// records are decoded as untyped values so one bad record cannot abort the
// whole read.
type rawExport struct {
	Segments []struct {
		Name     string                    `json:"name"`
		Duration any                       `json:"duration"`
		Actors   map[string]map[string]any `json:"actors"`
	} `json:"segments"`
	AbilityNames map[string]string `json:"ability_names"`
}

// Read loads and normalizes the current export. A missing file means the
// meter is not installed or has never written: ErrUnavailable.
func (f *FileSource) Read() (*Export, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, f.Path)
		}
		return nil, fmt.Errorf("read export: %w", err)
	}

	var raw rawExport
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}

	exp := &Export{
		Segments:     make([]Segment, 0, len(raw.Segments)),
		AbilityNames: raw.AbilityNames,
	}
	if exp.AbilityNames == nil {
		exp.AbilityNames = map[string]string{}
	}

	for _, rs := range raw.Segments {
		seg := Segment{
			Name:     rs.Name,
			Duration: toFloat(rs.Duration),
			Records:  make(map[string]map[string][]float64, len(rs.Actors)),
		}
		for actor, abilities := range rs.Actors {
			recs := make(map[string][]float64, len(abilities))
			for id, v := range abilities {
				arr, ok := v.([]any)
				if !ok {
					// Malformed record: skip it, keep the rest of the capture.
					log.Printf("[WARN] export: ability %s of %s is not a counter array, skipping", id, actor)
					continue
				}
				counters := make([]float64, len(arr))
				for i, c := range arr {
					counters[i] = toFloat(c)
				}
				recs[id] = counters
			}
			if len(recs) > 0 {
				seg.Records[actor] = recs
			}
		}
		exp.Segments = append(exp.Segments, seg)
	}
	return exp, nil
}

func toFloat(v any) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}
