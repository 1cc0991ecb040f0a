package mecab

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// featureFields is the arity of a mecab-ko-dic feature string:
// pos,semantic,has_jongseong,reading,type,start_pos,end_pos,expression
const featureFields = 8

// sentinel marks an empty field in the packed feature string.
const sentinel = "*"

// Jongseong reports whether a token's last syllable ends in a final
// consonant. The zero value means the dictionary did not say.
type Jongseong int8

const (
	JongseongUnknown Jongseong = iota
	JongseongTrue
	JongseongFalse
)

// String returns the dictionary spelling: "T", "F" or "*".
func (j Jongseong) String() string {
	switch j {
	case JongseongTrue:
		return "T"
	case JongseongFalse:
		return "F"
	default:
		return sentinel
	}
}

// Known reports whether the dictionary gave a value.
func (j Jongseong) Known() bool {
	return j != JongseongUnknown
}

// Bool returns the value and whether it is known.
func (j Jongseong) Bool() (value, ok bool) {
	return j == JongseongTrue, j.Known()
}

// MarshalJSON encodes the value as true, false or null.
func (j Jongseong) MarshalJSON() ([]byte, error) {
	switch j {
	case JongseongTrue:
		return []byte("true"), nil
	case JongseongFalse:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts true, false or null.
func (j *Jongseong) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true":
		*j = JongseongTrue
	case "false":
		*j = JongseongFalse
	case "null":
		*j = JongseongUnknown
	default:
		return errors.Newf("mecab: invalid jongseong value %s", data)
	}
	return nil
}

func parseJongseong(s string) Jongseong {
	switch s {
	case "T":
		return JongseongTrue
	case "F":
		return JongseongFalse
	default:
		return JongseongUnknown
	}
}

// Feature is the decoded linguistic record of one token.
// Optional fields are nil when the dictionary left them empty.
type Feature struct {
	// POS is the part-of-speech tag, e.g. "NNG" or "JKS".
	POS string `json:"pos"`
	// Semantic is the semantic subclass, e.g. "인명".
	Semantic *string `json:"semantic"`
	// HasJongseong reports a trailing consonant on the last syllable.
	HasJongseong Jongseong `json:"has_jongseong"`
	// Reading is the phonetic reading.
	Reading *string `json:"reading"`
	// Type is the morphological type: Inflect, Compound or Preanalysis.
	Type *string `json:"type"`
	// StartPOS and EndPOS tag the first and last morpheme of a compound.
	StartPOS *string `json:"start_pos"`
	EndPOS   *string `json:"end_pos"`
	// Expression is the compound decomposition, e.g. "먹/VV/*+었/EP/*".
	Expression *string `json:"expression"`
}

// SpaceFeature is the feature attached to reinserted whitespace tokens.
// The engine never produces it.
func SpaceFeature() Feature {
	return Feature{POS: spacePOS}
}

// IsSpace reports whether f marks a reinserted whitespace token.
func (f Feature) IsSpace() bool {
	return f.POS == spacePOS
}

// DecodeFeature decodes the packed feature string attached to an engine node.
// A raw string with anything other than eight fields yields a
// *MalformedFeatureError.
func DecodeFeature(raw string) (Feature, error) {
	values := strings.Split(raw, ",")
	if len(values) != featureFields {
		return Feature{}, &MalformedFeatureError{Raw: raw, Fields: len(values)}
	}

	f := Feature{
		Semantic:     optional(values[1]),
		HasJongseong: parseJongseong(values[2]),
		Reading:      optional(values[3]),
		Type:         optional(values[4]),
		StartPOS:     optional(values[5]),
		EndPOS:       optional(values[6]),
		Expression:   optional(values[7]),
	}
	if values[0] != sentinel {
		f.POS = values[0]
	}
	return f, nil
}

// Encode packs f back into the engine's eight-field form,
// writing "*" for absent fields.
func (f Feature) Encode() string {
	pos := f.POS
	if pos == "" {
		pos = sentinel
	}
	return strings.Join([]string{
		pos,
		orSentinel(f.Semantic),
		f.HasJongseong.String(),
		orSentinel(f.Reading),
		orSentinel(f.Type),
		orSentinel(f.StartPOS),
		orSentinel(f.EndPOS),
		orSentinel(f.Expression),
	}, ",")
}

func optional(v string) *string {
	if v == sentinel {
		return nil
	}
	return &v
}

func orSentinel(v *string) string {
	if v == nil {
		return sentinel
	}
	return *v
}
