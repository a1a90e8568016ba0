// Package prompt implements the human side of an analysis session: picking
// from a list, yes/no confirmations, whole-number answers and pauses.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/KaramelBytes/bikeshare-cli/internal/utils"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// ErrClosed is returned when input ends before a valid answer was given.
var ErrClosed = errors.New("input closed")

// Console asks questions on a line-oriented reader and writer. Invalid
// answers are re-asked locally and never surface as errors.
type Console struct {
	in  *bufio.Reader
	out io.Writer

	// Interactive enables pauses; it defaults to whether in is a terminal.
	Interactive bool
	// StrictUpper re-asks when an integer is above its upper bound instead
	// of only warning.
	StrictUpper bool

	warn *color.Color
}

// NewConsole returns a Console reading from in and writing to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	c := &Console{
		in:   bufio.NewReader(in),
		out:  out,
		warn: color.New(color.FgYellow),
	}
	if f, ok := in.(*os.File); ok {
		c.Interactive = term.IsTerminal(int(f.Fd()))
	}
	if !c.Interactive {
		c.warn.DisableColor()
	}
	return c
}

func (c *Console) ask(question string) (string, error) {
	fmt.Fprintf(c.out, "%s\n>>> ", question)
	line, err := c.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read answer: %w", err)
		}
		if line == "" {
			fmt.Fprintln(c.out)
			return "", ErrClosed
		}
	}
	return strings.TrimSpace(line), nil
}

func (c *Console) warnf(format string, args ...any) {
	c.warn.Fprintf(c.out, format+"\n", args...)
}

// Choose asks until the title-cased answer is one of valids.
func (c *Console) Choose(question string, valids []string) (string, error) {
	for {
		line, err := c.ask(question)
		if err != nil {
			return "", err
		}
		t := utils.TitleCase(line)
		if slices.Contains(valids, t) {
			return t, nil
		}
		c.warnf("Please make a valid selection")
	}
}

// Confirm asks a Y/N question.
func (c *Console) Confirm(question string) (bool, error) {
	a, err := c.Choose(question, []string{"Y", "N"})
	if err != nil {
		return false, err
	}
	return a == "Y", nil
}

// AskInt asks for a whole number. Answers below lower are re-asked; answers
// above upper only draw a warning unless StrictUpper is set.
func (c *Console) AskInt(question string, lower, upper *int) (int, error) {
	for {
		line, err := c.ask(question)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			c.warnf("Invalid response - please input your answer as a whole number.")
			continue
		}
		if lower != nil && v < *lower {
			c.warnf("Response is lower than expected.")
			continue
		}
		if upper != nil && v > *upper {
			c.warnf("Response is greater than expected.")
			if c.StrictUpper {
				continue
			}
		}
		return v, nil
	}
}

// Pause waits for ENTER on an interactive console and does nothing otherwise.
func (c *Console) Pause() error {
	if !c.Interactive {
		return nil
	}
	fmt.Fprint(c.out, "Press ENTER to continue.")
	if _, err := c.in.ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read answer: %w", err)
	}
	return nil
}
