package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func console(input string) (*Console, *bytes.Buffer) {
	var out bytes.Buffer
	return NewConsole(strings.NewReader(input), &out), &out
}

func TestChooseRepromptsUntilValid(t *testing.T) {
	c, out := console("boston\nnew york city\n")
	got, err := c.Choose("Choose a city", []string{"Chicago", "New York City", "Washington"})
	require.NoError(t, err)
	assert.Equal(t, "New York City", got)
	assert.Equal(t, 1, strings.Count(out.String(), "Please make a valid selection"))
	assert.Equal(t, 2, strings.Count(out.String(), ">>> "))
}

func TestConfirm(t *testing.T) {
	c, _ := console("maybe\nn\ny\n")
	ok, err := c.Confirm("Does this value make sense Y/N?")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = c.Confirm("Again?")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAskIntLowerBoundForcesReentry(t *testing.T) {
	lower := 1900
	c, out := console("abc\n1850\n1920\n")
	v, err := c.AskInt("Earliest?", &lower, nil)
	require.NoError(t, err)
	assert.Equal(t, 1920, v)
	assert.Contains(t, out.String(), "Invalid response - please input your answer as a whole number.")
	assert.Contains(t, out.String(), "Response is lower than expected.")
}

func TestAskIntUpperBoundOnlyWarns(t *testing.T) {
	upper := 2000
	c, out := console("2010\n")
	v, err := c.AskInt("Latest?", nil, &upper)
	require.NoError(t, err)
	assert.Equal(t, 2010, v)
	assert.Contains(t, out.String(), "Response is greater than expected.")
}

func TestAskIntStrictUpper(t *testing.T) {
	upper := 2000
	c, _ := console("2010\n1999\n")
	c.StrictUpper = true
	v, err := c.AskInt("Latest?", nil, &upper)
	require.NoError(t, err)
	assert.Equal(t, 1999, v)
}

func TestConsoleInputClosed(t *testing.T) {
	c, _ := console("nope\n")
	_, err := c.Confirm("Y/N?")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestConsoleLastLineWithoutNewline(t *testing.T) {
	c, _ := console("y")
	ok, err := c.Confirm("Y/N?")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPauseSkippedWhenNotInteractive(t *testing.T) {
	c, out := console("y\n")
	require.False(t, c.Interactive)
	require.NoError(t, c.Pause())
	assert.Empty(t, out.String())
	ok, err := c.Confirm("still there?")
	require.NoError(t, err)
	assert.True(t, ok, "pause must not consume input")
}

func TestPauseInteractive(t *testing.T) {
	c, out := console("\ny\n")
	c.Interactive = true
	require.NoError(t, c.Pause())
	assert.Contains(t, out.String(), "Press ENTER to continue.")
	ok, err := c.Confirm("next")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestScript(t *testing.T) {
	var out bytes.Buffer
	s := NewScript("N", "1920", "y", "June")
	s.Out = &out

	ok, err := s.Confirm("Does this value make sense Y/N?")
	require.NoError(t, err)
	assert.False(t, ok)
	v, err := s.AskInt("Earliest?", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1920, v)
	ok, err = s.Confirm("Sure?")
	require.NoError(t, err)
	assert.True(t, ok)
	m, err := s.Choose("Month?", []string{"June", "All"})
	require.NoError(t, err)
	assert.Equal(t, "June", m)
	assert.Equal(t, 0, s.Remaining())

	_, err = s.Confirm("more?")
	assert.ErrorIs(t, err, ErrScriptExhausted)
	assert.Contains(t, out.String(), "Earliest?\n>>> 1920\n")
}

func TestScriptRejectsInvalidAnswers(t *testing.T) {
	_, err := NewScript("x").AskInt("n?", nil, nil)
	assert.Error(t, err)
	_, err = NewScript("perhaps").Confirm("y/n?")
	assert.Error(t, err)
}
