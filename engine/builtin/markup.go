package builtin

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/ardnew/ctext/engine"
)

func markupOperators() []engine.Operator {
	return []engine.Operator{
		{
			Name:        "striptags",
			Description: "Removes HTML markup, scripts, and styles, keeping the text.",
			Impl:        engine.SingleFunc(stripTags),
		},
		{
			Name:        "select",
			Description: "Extracts the HTML elements matching a CSS selector, one value per match.",
			Params: []engine.Param{
				{Name: "selector", Description: "The CSS selector"},
				{Name: "[format]", Description: "text (default), html, inner, or attr:name"},
			},
			Impl: engine.SingleFunc(selectMarkup),
		},
		{
			Name:        "htmldecode",
			Description: "Decodes HTML entities.",
			Impl:        transform(html.UnescapeString),
		},
		{
			Name:        "htmlencode",
			Description: "Encodes HTML special characters as entities.",
			Impl:        transform(html.EscapeString),
		},
	}
}

func parseMarkup(in string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(in))
	if err != nil {
		return nil, ErrInvalidMarkup.Wrap(err)
	}

	return doc, nil
}

func stripTags(
	_ context.Context,
	_ *engine.Session,
	in string,
	_ engine.Arg,
	_ int,
) (engine.Result, error) {
	doc, err := parseMarkup(in)
	if err != nil {
		return engine.Result{}, err
	}

	doc.Find("script, style").Remove()

	return engine.Value(doc.Text()), nil
}

func selectMarkup(
	_ context.Context,
	s *engine.Session,
	in string,
	arg engine.Arg,
	_ int,
) (engine.Result, error) {
	args := arg.Split()

	selector := s.Value(args.At(0))
	if selector == "" {
		return engine.Value(in), nil
	}

	format := s.ValueOr(args.At(1), "text")

	render, err := renderer(format)
	if err != nil {
		return engine.Result{}, err
	}

	doc, err := parseMarkup(in)
	if err != nil {
		return engine.Result{}, err
	}

	var matches []string

	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		if text, ok := render(sel); ok {
			matches = append(matches, text)
		}
	})

	if len(matches) == 0 {
		return engine.Value(in), nil
	}

	return engine.Values(matches...), nil
}

// renderer returns the function that extracts text from a match in the named
// format.
func renderer(format string) (func(*goquery.Selection) (string, bool), error) {
	if name, ok := strings.CutPrefix(format, "attr:"); ok {
		return func(sel *goquery.Selection) (string, bool) {
			return sel.Attr(name)
		}, nil
	}

	switch format {
	case "text":
		return func(sel *goquery.Selection) (string, bool) {
			return sel.Text(), true
		}, nil

	case "html":
		return func(sel *goquery.Selection) (string, bool) {
			text, err := goquery.OuterHtml(sel)

			return text, err == nil
		}, nil

	case "inner":
		return func(sel *goquery.Selection) (string, bool) {
			text, err := sel.Html()

			return text, err == nil
		}, nil
	}

	return nil, unknownMode(format, "text", "html", "inner", "attr:name")
}
