package main

import (
	"fmt"
	"io"

	"github.com/AlecAivazis/survey/v2"

	"sitedeck/internal/ui"
)

// writerNotifier prints notifications to a stream, usually stderr.
type writerNotifier struct {
	w io.Writer
}

func (n writerNotifier) Success(msg string) {
	fmt.Fprintln(n.w, ui.Styles.StatusOK.Render(msg))
}

func (n writerNotifier) Error(msg string) {
	fmt.Fprintln(n.w, ui.Styles.StatusError.Render(msg))
}

// surveyConfirmer asks on the controlling terminal. Ctrl-C is a decline.
type surveyConfirmer struct{}

func (surveyConfirmer) Confirm(prompt string) (bool, error) {
	ok := false
	if err := survey.AskOne(&survey.Confirm{Message: prompt, Default: false}, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// staticConfirmer answers every prompt the same way (rm --yes).
type staticConfirmer bool

func (c staticConfirmer) Confirm(string) (bool, error) { return bool(c), nil }
