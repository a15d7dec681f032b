package domain

import "strings"

// ListingFacts carries the agent-supplied facts for one listing. Every field is
// a display string; nothing here is ever parsed as a number.
type ListingFacts struct {
	Area           string `json:"area" yaml:"area"`
	Price          string `json:"price" yaml:"price"`
	Location       string `json:"location" yaml:"location"`
	Rooms          string `json:"rooms,omitempty" yaml:"rooms,omitempty"`
	Bathrooms      string `json:"bathrooms,omitempty" yaml:"bathrooms,omitempty"`
	Floor          string `json:"floor,omitempty" yaml:"floor,omitempty"`
	AdditionalInfo string `json:"additional_info,omitempty" yaml:"additional_info,omitempty"`
}

// MissingRequired returns the json names of the required facts that are blank,
// in the order area, price, location.
func (f ListingFacts) MissingRequired() []string {
	var missing []string
	if strings.TrimSpace(f.Area) == "" {
		missing = append(missing, "area")
	}
	if strings.TrimSpace(f.Price) == "" {
		missing = append(missing, "price")
	}
	if strings.TrimSpace(f.Location) == "" {
		missing = append(missing, "location")
	}
	return missing
}

// Tone selects the prompt template bundle.
type Tone string

const (
	ToneDefault      Tone = "default"
	ToneProfessional Tone = "professional"
	ToneFriendly     Tone = "friendly"
	ToneLuxury       Tone = "luxury"
)

// Tones lists every supported tone in display order.
var Tones = []Tone{ToneDefault, ToneProfessional, ToneFriendly, ToneLuxury}

// ParseTone maps free-form input onto a Tone. Anything unrecognised, including
// the UI's "normal", resolves to ToneDefault.
func ParseTone(raw string) Tone {
	switch Tone(strings.ToLower(strings.TrimSpace(raw))) {
	case ToneProfessional:
		return ToneProfessional
	case ToneFriendly:
		return ToneFriendly
	case ToneLuxury:
		return ToneLuxury
	default:
		return ToneDefault
	}
}

// LengthHint is an advisory output length folded into the prompt.
type LengthHint string

const (
	LengthShort  LengthHint = "short"
	LengthNormal LengthHint = "normal"
	LengthLong   LengthHint = "long"
)

// ParseLength maps free-form input onto a LengthHint, defaulting to LengthNormal.
func ParseLength(raw string) LengthHint {
	switch LengthHint(strings.ToLower(strings.TrimSpace(raw))) {
	case LengthShort:
		return LengthShort
	case LengthLong:
		return LengthLong
	default:
		return LengthNormal
	}
}

// ImageAttachment is one user-selected photo. Data holds raw bytes; it is only
// base64 encoded on the wire.
type ImageAttachment struct {
	MIMEType string `json:"mime_type"`
	Data     []byte `json:"data"`
}

// GenerationRequest is the composed prompt plus its inline attachments, in the
// order the user selected them.
type GenerationRequest struct {
	Prompt string
	Images []ImageAttachment
}

// GenerationResult is what a UI collaborator renders: either Description or
// ErrorKind with a user-facing Message.
type GenerationResult struct {
	Description string    `json:"description,omitempty"`
	ErrorKind   ErrorKind `json:"error_kind,omitempty"`
	Message     string    `json:"error,omitempty"`
}

// Succeeded reports whether the result carries a description.
func (r GenerationResult) Succeeded() bool {
	return r.ErrorKind == ""
}
