package entity

// Likelihood is the confidence a face-analysis provider assigns to one facial
// attribute. The zero value is LikelihoodUnknown and covers every label outside
// the five ranked ones.
type Likelihood uint8

const (
	LikelihoodUnknown      Likelihood = 0
	LikelihoodVeryUnlikely Likelihood = 1
	LikelihoodUnlikely     Likelihood = 2
	LikelihoodPossible     Likelihood = 3
	LikelihoodLikely       Likelihood = 4
	LikelihoodVeryLikely   Likelihood = 5
)

var LikelihoodMap = map[Likelihood]string{
	LikelihoodVeryUnlikely: "VERY_UNLIKELY",
	LikelihoodUnlikely:     "UNLIKELY",
	LikelihoodPossible:     "POSSIBLE",
	LikelihoodLikely:       "LIKELY",
	LikelihoodVeryLikely:   "VERY_LIKELY",
}

var likelihoodByLabel = map[string]Likelihood{
	"VERY_UNLIKELY": LikelihoodVeryUnlikely,
	"UNLIKELY":      LikelihoodUnlikely,
	"POSSIBLE":      LikelihoodPossible,
	"LIKELY":        LikelihoodLikely,
	"VERY_LIKELY":   LikelihoodVeryLikely,
}

// ParseLikelihood maps a provider label to its Likelihood. Only the five exact
// upper-case labels are ranked; anything else, including "UNKNOWN" and
// "LIKELIHOOD_UNSPECIFIED", yields LikelihoodUnknown.
func ParseLikelihood(label string) Likelihood {
	return likelihoodByLabel[label]
}

func (l Likelihood) String() string {
	if s, ok := LikelihoodMap[l]; ok {
		return s
	}
	return "UNKNOWN"
}

// Score ranks the likelihood from 1 (VERY_UNLIKELY) to 5 (VERY_LIKELY); unknown
// values score 0.
func (l Likelihood) Score() int {
	if l > LikelihoodVeryLikely {
		return 0
	}
	return int(l)
}

func (l Likelihood) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Likelihood) UnmarshalText(text []byte) error {
	*l = ParseLikelihood(string(text))
	return nil
}

// Face holds the emotion likelihoods reported for one detected face.
type Face struct {
	Joy      Likelihood `json:"joy"`
	Sorrow   Likelihood `json:"sorrow"`
	Anger    Likelihood `json:"anger"`
	Surprise Likelihood `json:"surprise"`
}

// DetectionResult is a provider's answer for one submitted image, faces in
// provider order.
type DetectionResult struct {
	Faces []Face `json:"faces"`
}

func (r DetectionResult) FaceCount() int {
	return len(r.Faces)
}
