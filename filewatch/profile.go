package filewatch

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aguxez/carnitarget/models"
)

// ParseProfile reads a YAML user profile. Unknown keys are rejected so a typo
// does not silently fall back to a default target.
func ParseProfile(path string) (models.UserProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("reading profile file: %w", err)
	}
	return DecodeProfile(data)
}

func DecodeProfile(data []byte) (models.UserProfile, error) {
	var p models.UserProfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return models.UserProfile{}, fmt.Errorf("decoding profile: %w", err)
	}
	for n, c := range p.CustomNutrientTargets {
		if _, ok := models.Units[n]; !ok {
			return models.UserProfile{}, fmt.Errorf("custom target for unknown nutrient %q", n)
		}
		if c.Mode != models.ModeAuto && c.Mode != models.ModeManual {
			return models.UserProfile{}, fmt.Errorf("custom target %s: invalid mode %q", n, c.Mode)
		}
	}
	return p, nil
}
