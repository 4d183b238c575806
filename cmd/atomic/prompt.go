package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-atomic/pkg/tags"
)

var errAborted = errors.New("prompt aborted")

// prompter abstracts the terminal so option prompting can be tested without
// one.
type prompter interface {
	Input(ctx context.Context, message, def string) (string, error)
	Confirm(ctx context.Context, message string, def bool) (bool, error)
}

var newPrompter = func() prompter { return surveyPrompter{} }

type surveyPrompter struct{}

func (surveyPrompter) Input(ctx context.Context, message, def string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	if err := survey.AskOne(&survey.Input{Message: message, Default: def}, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (surveyPrompter) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	if err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return errAborted
	}
	return err
}

// promptOptions asks for every recognized argument of spec that was neither
// bound positionally nor passed by name, appending the answers to kwargs.
func promptOptions(ctx context.Context, p prompter, spec tags.ComponentSpec, positional []any, kwargs tags.Kwargs) (tags.Kwargs, error) {
	params := append([]tags.Param(nil), spec.Params...)
	if n := len(positional); n > 0 {
		params = params[min(n, len(params)):]
	}
	params = append(params, spec.Options...)

	out := append(tags.Kwargs(nil), kwargs...)
	for _, param := range params {
		if kwargs.Has(param.Name) || param.Name == "widget" {
			continue
		}

		if def, ok := param.Default.(bool); ok {
			answer, err := p.Confirm(ctx, param.Name, def)
			if err != nil {
				return nil, err
			}
			out = append(out, tags.Kwarg{Key: param.Name, Value: answer})
			continue
		}

		if param.Name == "items" {
			answer, err := p.Input(ctx, "items (comma separated labels)", "")
			if err != nil {
				return nil, err
			}
			if items := parseItems(answer); len(items) > 0 {
				out = append(out, tags.Kwarg{Key: param.Name, Value: items})
			}
			continue
		}

		def := ""
		if param.Default != nil {
			def = fmt.Sprint(param.Default)
		}
		answer, err := p.Input(ctx, param.Name, def)
		if err != nil {
			return nil, err
		}
		if answer == "" && param.Default == nil {
			continue
		}
		out = append(out, tags.Kwarg{Key: param.Name, Value: answer})
	}
	return out, nil
}

func parseItems(raw string) []any {
	var items []any
	for _, label := range strings.Split(raw, ",") {
		if label = strings.TrimSpace(label); label != "" {
			items = append(items, map[string]any{"label": label})
		}
	}
	return items
}
