package similarity

// Label is a human-readable interpretation of a similarity score.
type Label string

const (
	LabelNearlyIdentical Label = "Nearly identical meaning"
	LabelVerySimilar     Label = "Very similar meaning"
	LabelModerate        Label = "Moderately similar"
	LabelSlight          Label = "Slightly similar"
	LabelDifferent       Label = "Different meanings"
)

// Interpret maps a score onto a label using fixed thresholds.
// It is total: NaN and anything below 0.3 map to LabelDifferent.
func Interpret(score float64) Label {
	switch {
	case score >= 0.9:
		return LabelNearlyIdentical
	case score >= 0.7:
		return LabelVerySimilar
	case score >= 0.5:
		return LabelModerate
	case score >= 0.3:
		return LabelSlight
	default:
		return LabelDifferent
	}
}
