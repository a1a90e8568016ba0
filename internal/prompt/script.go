package prompt

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/KaramelBytes/bikeshare-cli/internal/utils"
)

// ErrScriptExhausted is returned when a Script runs out of answers.
var ErrScriptExhausted = errors.New("no scripted answer left")

// Script answers questions from a fixed queue, for non-interactive runs.
// Each question and its answer are echoed to Out when it is set.
type Script struct {
	answers []string
	Out     io.Writer
}

// NewScript returns a Script that will give answers in order.
func NewScript(answers ...string) *Script {
	return &Script{answers: answers}
}

// Remaining returns the number of unused answers.
func (s *Script) Remaining() int { return len(s.answers) }

func (s *Script) next(question string) (string, error) {
	if len(s.answers) == 0 {
		return "", fmt.Errorf("%q: %w", question, ErrScriptExhausted)
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	if s.Out != nil {
		fmt.Fprintf(s.Out, "%s\n>>> %s\n", question, a)
	}
	return strings.TrimSpace(a), nil
}

// Choose returns the next answer, which must be one of valids.
func (s *Script) Choose(question string, valids []string) (string, error) {
	a, err := s.next(question)
	if err != nil {
		return "", err
	}
	t := utils.TitleCase(a)
	if !slices.Contains(valids, t) {
		return "", fmt.Errorf("scripted answer %q is not one of %s", a, strings.Join(valids, ", "))
	}
	return t, nil
}

// Confirm returns true for a scripted "Y".
func (s *Script) Confirm(question string) (bool, error) {
	a, err := s.Choose(question, []string{"Y", "N"})
	if err != nil {
		return false, err
	}
	return a == "Y", nil
}

// AskInt returns the next answer as an integer. Bounds are not enforced; the
// caller chose the answers.
func (s *Script) AskInt(question string, _, _ *int) (int, error) {
	a, err := s.next(question)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(a)
	if err != nil {
		return 0, fmt.Errorf("scripted answer %q is not a whole number", a)
	}
	return v, nil
}

// Pause is a no-op.
func (s *Script) Pause() error { return nil }
