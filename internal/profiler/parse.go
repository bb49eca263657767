package profiler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BerylCAtieno/romantic-brand-builder/internal/models"
)

// ParseProfile decodes the model's JSON reply and checks it against the
// required-field contract. Nothing is defaulted: a missing field fails.
func ParseProfile(text string) (*models.GeneratedProfile, error) {
	dec := json.NewDecoder(strings.NewReader(text))

	var profile models.GeneratedProfile
	if err := dec.Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after JSON object", ErrMalformedResponse)
	}

	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	profile.Normalize()
	return &profile, nil
}
