package templates

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"bgp-notifier/internal/logging"
)

// ErrTemplateMissing is returned by Render when the channel's template
// was never successfully loaded.
var ErrTemplateMissing = errors.New("template not loaded")

var placeholderRe = regexp.MustCompile(`\$\{([^}]*)\}`)

// Store holds one raw template body per channel.
type Store struct {
	logger    *logging.Logger
	templates map[string]string
}

// NewStore loads <channel>.txt from dir for every given channel.
// A channel whose template cannot be read is logged and left absent;
// rendering against it fails later with ErrTemplateMissing.
func NewStore(dir string, channels []string, logger *logging.Logger) *Store {
	s := &Store{
		logger:    logger,
		templates: make(map[string]string, len(channels)),
	}
	for _, channel := range channels {
		body, err := os.ReadFile(filepath.Join(dir, channel+".txt"))
		if err != nil {
			logger.Errorf("%s template cannot be loaded: %v", channel, err)
			continue
		}
		s.templates[channel] = string(body)
	}
	return s
}

// Loaded reports whether a template was loaded for channel.
func (s *Store) Loaded(channel string) bool {
	_, ok := s.templates[channel]
	return ok
}

// Render substitutes every ${key} occurrence in the channel's template
// with context[key]. Keys absent from context substitute as the literal
// "undefined", matching the historical behavior alert templates rely on.
func (s *Store) Render(channel string, context map[string]string) (string, error) {
	tmpl, ok := s.templates[channel]
	if !ok {
		return "", fmt.Errorf("channel %s: %w", channel, ErrTemplateMissing)
	}
	out := placeholderRe.ReplaceAllStringFunc(tmpl, func(m string) string {
		key := placeholderRe.FindStringSubmatch(m)[1]
		value, ok := context[key]
		if !ok {
			return "undefined"
		}
		return value
	})
	return out, nil
}
