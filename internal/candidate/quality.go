package candidate

import (
	"fmt"
	"strings"
)

// QualityLevel selects the minimum quality score a candidate needs to be
// accepted.
type QualityLevel int

// Quality levels.
const (
	QualityLow QualityLevel = iota + 1
	QualityMedium
	QualityHigh
	QualityUltra
)

var qualityNames = map[QualityLevel]string{
	QualityLow:    "low",
	QualityMedium: "medium",
	QualityHigh:   "high",
	QualityUltra:  "ultra",
}

// QualityLevels returns the names of all quality levels, ordered by
// threshold.
func QualityLevels() []string {
	return []string{"low", "medium", "high", "ultra"}
}

// ParseQualityLevel parses a quality level name case insensitively.
func ParseQualityLevel(s string) (QualityLevel, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for level, levelName := range qualityNames {
		if levelName == name {
			return level, nil
		}
	}
	return 0, fmt.Errorf("unsupported quality level '%s', valid values are %s",
		s, strings.Join(QualityLevels(), ", "))
}

// Threshold returns the minimum score of the level.
func (q QualityLevel) Threshold() float64 {
	return float64(q)
}

func (q QualityLevel) String() string {
	if name, ok := qualityNames[q]; ok {
		return name
	}
	return fmt.Sprintf("QualityLevel(%d)", int(q))
}
