package server

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/goliatone/go-atomic/internal/forms"
	"github.com/goliatone/go-atomic/internal/polls"
	"github.com/goliatone/go-atomic/pkg/tags"
)

const (
	latestLimit     = 5
	noChoiceMessage = "You didn't select a choice."
)

// layout adds what base.tmpl needs: asset tags for the given component kinds
// (every asset when none are named), the CSRF token, a heading, and any queued
// flash messages.
func (s *Server) layout(c echo.Context, data map[string]any, kinds ...string) map[string]any {
	out := make(map[string]any, len(data)+6)
	maps.Copy(out, data)

	var styles, scripts []string
	if len(kinds) > 0 {
		styles, scripts = s.lib.Assets(kinds...)
	}
	out["stylesheets"] = s.assetTags("stylesheets", s.lib.Stylesheets, kinds, styles)
	out["scripts"] = s.assetTags("scripts", s.lib.Scripts, kinds, scripts)
	out["csrf"] = csrfToken(c)

	if _, ok := out["heading"]; !ok {
		if title, ok := out["title"].(string); ok && title != "" {
			out["heading"] = s.component(tags.KindTitle, tags.KV("title", title, "size", "1"))
		}
	}

	var flash string
	for _, msg := range popFlashes(c) {
		flash += s.component(tags.KindText, tags.KV("text", msg, "style", "success"))
	}
	out["flash"] = flash
	return out
}

func (s *Server) assetTags(label string, render func(...string) (string, error), kinds, names []string) string {
	if len(kinds) > 0 && len(names) == 0 {
		return ""
	}
	html, err := render(names...)
	if err != nil {
		s.logger.Warn().Err(err).Str("assets", label).Msg("asset tags unavailable")
		return ""
	}
	return html
}

// component renders kind and logs failures; pages degrade to an empty slot.
func (s *Server) component(kind string, kwargs tags.Kwargs) string {
	html, err := s.lib.Render(kind, nil, kwargs)
	if err != nil {
		s.logger.Error().Err(err).Str("kind", kind).Msg("component render failed")
		return ""
	}
	return html
}

func (s *Server) breadcrumb(items ...string) string {
	kwargs := tags.KV("item1", "Polls", "type", "2")
	switch len(items) {
	case 0:
		kwargs = append(kwargs, tags.KV("item2", "Latest")...)
	case 1:
		kwargs = append(kwargs, tags.KV("item2", items[0])...)
	default:
		kwargs = append(kwargs, tags.KV("item2", items[0], "type", "3", "item3", items[1])...)
	}
	return s.component(tags.KindBreadcrumb, kwargs)
}

func (s *Server) index(c echo.Context) error {
	questions, err := s.store.LatestQuestions(c.Request().Context(), latestLimit)
	if err != nil {
		return err
	}

	views := make([]any, 0, len(questions))
	for _, q := range questions {
		views = append(views, questionView(q))
	}

	return s.page(c, "pages/index.tmpl", map[string]any{
		"title":      "Latest polls",
		"breadcrumb": s.breadcrumb(),
		"questions":  views,
		"empty":      s.component(tags.KindText, tags.KV("text", "No polls are available.", "style", "muted")),
	}, tags.KindTitle, tags.KindText, tags.KindBreadcrumb)
}

func (s *Server) detail(c echo.Context) error {
	q, err := s.loadQuestion(c)
	if err != nil {
		return err
	}
	return s.renderDetail(c, q, "")
}

func (s *Server) renderDetail(c echo.Context, q polls.Question, errorMessage string) error {
	choices, err := s.store.Choices(c.Request().Context(), q.ID)
	if err != nil {
		return err
	}

	data := map[string]any{
		"title":      "Question",
		"breadcrumb": s.breadcrumb(q.Text),
		"question":   questionView(q),
		"choices":    choiceViews(choices),
	}
	if errorMessage != "" {
		data["error"] = s.component(tags.KindText, tags.KV("text", errorMessage, "size", "2", "style", "error"))
	}
	return s.page(c, "pages/detail.tmpl", data, tags.KindTitle, tags.KindText, tags.KindBreadcrumb)
}

func (s *Server) results(c echo.Context) error {
	q, err := s.loadQuestion(c)
	if err != nil {
		return err
	}
	choices, err := s.store.Choices(c.Request().Context(), q.ID)
	if err != nil {
		return err
	}
	return s.page(c, "pages/results.tmpl", map[string]any{
		"title":      q.Text,
		"breadcrumb": s.breadcrumb(q.Text, "Results"),
		"question":   questionView(q),
		"choices":    choiceViews(choices),
	}, tags.KindTitle, tags.KindBreadcrumb)
}

// vote records a vote and redirects to the results, or re-renders the
// question with an error when the choice is missing or foreign.
func (s *Server) vote(c echo.Context) error {
	q, err := s.loadQuestion(c)
	if err != nil {
		return err
	}

	choiceID, err := strconv.ParseInt(c.FormValue("choice"), 10, 64)
	if err == nil {
		err = s.store.Vote(c.Request().Context(), q.ID, choiceID)
	}
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) || errors.Is(err, polls.ErrNotFound) {
			return s.renderDetail(c, q, noChoiceMessage)
		}
		return err
	}
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/polls/%d/results/", q.ID))
}

func (s *Server) contact(c echo.Context) error {
	form := &forms.ContactForm{}
	if c.Request().Method == http.MethodPost {
		values, err := c.FormParams()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Malformed form submission")
		}
		form.Bind(values)
		if form.Valid() {
			s.logger.Info().
				Str("subject", form.Subject).
				Str("sender", form.Sender).
				Strs("recipients", form.Recipients(s.cfg.Server.ContactOwner)).
				Msg("contact message received")
			if err := addFlash(c, "Thanks, your message was sent."); err != nil {
				return err
			}
			return c.Redirect(http.StatusSeeOther, "/thanks/")
		}
	}
	return s.renderForm(c, form, "Contact", "/contact/", "Send")
}

func (s *Server) name(c echo.Context) error {
	form := &forms.NameForm{}
	if c.Request().Method == http.MethodPost {
		values, err := c.FormParams()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Malformed form submission")
		}
		form.Bind(values)
		if form.Valid() {
			if err := addFlash(c, "Your name form was received."); err != nil {
				return err
			}
			return c.Redirect(http.StatusSeeOther, "/thanks/")
		}
	}
	return s.renderForm(c, form, "Name", "/name/", "Submit")
}

func (s *Server) renderForm(c echo.Context, form forms.Form, title, action, submit string) error {
	html, err := forms.Render(s.lib, form)
	if err != nil {
		return err
	}
	return s.page(c, "pages/form.tmpl", map[string]any{
		"title":      title,
		"breadcrumb": s.breadcrumb(title),
		"action":     action,
		"submit":     submit,
		"form":       html,
	}, tags.KindTitle, tags.KindText, tags.KindBreadcrumb,
		tags.KindInputText, tags.KindInputPassword, tags.KindInputCheckbox)
}

func (s *Server) thanks(c echo.Context) error {
	return s.page(c, "pages/thanks.tmpl", map[string]any{
		"title":      "Thanks",
		"breadcrumb": s.breadcrumb("Thanks"),
	}, tags.KindTitle, tags.KindText, tags.KindBreadcrumb)
}

// galleryExamples pairs each component kind with arguments that show it off.
var galleryExamples = map[string]tags.Kwargs{
	tags.KindText:          tags.KV("text", "The quick brown fox jumps over the lazy dog."),
	tags.KindTitle:         tags.KV("title", "Section title", "size", "2"),
	tags.KindDivider:       tags.KV("title", "Divider", "orientation", "left"),
	tags.KindInputCheckbox: tags.KV("label", "Remember me", "checked", true),
	tags.KindBreadcrumb:    tags.KV("type", "3"),
	tags.KindDropdown: tags.KV("title", "Options", "type", "primary", "items", []any{
		map[string]any{"label": "First", "active": true},
		map[string]any{"label": "Second"},
		map[string]any{"label": "Disabled", "disabled": true},
	}),
	tags.KindInputText:     tags.KV("placeholder", "Your name", "left_icon", "bi bi-person"),
	tags.KindInputPassword: tags.KV("placeholder", "Password", "left_icon", "bi bi-lock"),
	tags.KindInputNumber:   tags.KV("placeholder", "Amount", "min", "0", "max", "10"),
	tags.KindInputSearch:   tags.KV("placeholder", "Search polls"),
	tags.KindBaseInput:     tags.KV("placeholder", "Invalid value", "error", true),
}

// gallery renders every registered component once.
func (s *Server) gallery(c echo.Context) error {
	kinds := s.lib.Registry().Names()
	items := make([]any, 0, len(kinds))
	for _, kind := range kinds {
		html, err := s.lib.Render(kind, nil, galleryExamples[kind])
		if err != nil {
			return fmt.Errorf("server: gallery %s: %w", kind, err)
		}
		items = append(items, map[string]any{
			"kind":    kind,
			"heading": s.component(tags.KindTitle, tags.KV("title", kind, "size", "4", "style", "muted")),
			"html":    html,
		})
	}
	return s.page(c, "pages/components.tmpl", map[string]any{
		"title":      "Components",
		"breadcrumb": s.breadcrumb("Components"),
		"items":      items,
	})
}

func (s *Server) loadQuestion(c echo.Context) (polls.Question, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return polls.Question{}, echo.NewHTTPError(http.StatusNotFound, "Question not found")
	}
	q, err := s.store.Question(c.Request().Context(), id)
	if errors.Is(err, polls.ErrNotFound) {
		return polls.Question{}, echo.NewHTTPError(http.StatusNotFound, "Question not found")
	}
	return q, err
}

func questionView(q polls.Question) map[string]any {
	return map[string]any{
		"id":        strconv.FormatInt(q.ID, 10),
		"text":      q.Text,
		"published": q.PubDate.Format("Jan 2, 2006"),
	}
}

func choiceViews(choices []polls.Choice) []any {
	out := make([]any, 0, len(choices))
	for _, choice := range choices {
		out = append(out, map[string]any{
			"id":    strconv.FormatInt(choice.ID, 10),
			"text":  choice.Text,
			"votes": choice.Votes,
		})
	}
	return out
}
