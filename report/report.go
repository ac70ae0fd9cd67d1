// Package report renders validation outcomes for people and for machines.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	"github.com/hokaccha/go-prettyjson"

	"github.com/reoring/conform"
	"github.com/reoring/conform/i18n"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options selects the rendering.
type Options struct {
	Format string // FormatText (default) or FormatJSON
	Color  bool
	Lang   string // i18n language for titles; "" means en
}

// Result is the JSON document written for FormatJSON.
type Result struct {
	Valid bool   `json:"valid"`
	Issue *Entry `json:"issue,omitempty"`
}

// Entry is one reported problem.
type Entry struct {
	Path    string         `json:"path"`
	Code    string         `json:"code"`
	Title   string         `json:"title"`
	Message string         `json:"message"`
	Params  map[string]any `json:"params,omitempty"`
	Value   any            `json:"value,omitempty"`
}

// CodeUnknown marks errors that did not come from the conform package.
const CodeUnknown = "error"

// Build converts a validation result into a Result. Errors that conform does
// not know about are reported with CodeUnknown at "$".
func Build(err error, lang string) Result {
	if err == nil {
		return Result{Valid: true}
	}
	tr := i18n.For(lang)
	iss, ok := conform.AsIssue(err)
	if !ok {
		return Result{Issue: &Entry{Path: "$", Code: CodeUnknown, Title: CodeUnknown, Message: err.Error()}}
	}
	e := &Entry{
		Path:    iss.Path,
		Code:    iss.Code,
		Title:   tr.Message(iss.Code, nil),
		Message: iss.Message,
		Params:  iss.Params,
	}
	if ve := asValueError(err); ve != nil {
		e.Value = ve.Value
	}
	return Result{Issue: e}
}

// Write renders err (nil meaning success) to w.
func Write(w io.Writer, err error, opt Options) error {
	res := Build(err, opt.Lang)
	if opt.Format == FormatJSON {
		return writeJSON(w, res, opt.Color)
	}
	return writeText(w, res, err, opt.Color)
}

func writeJSON(w io.Writer, res Result, colored bool) error {
	var (
		b   []byte
		err error
	)
	if colored {
		b, err = prettyjson.Marshal(res)
	} else {
		b, err = json.MarshalIndent(res, "", "  ")
	}
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

func writeText(w io.Writer, res Result, cause error, colored bool) error {
	ok := color.New(color.FgGreen, color.Bold)
	bad := color.New(color.FgRed, color.Bold)
	dim := color.New(color.Faint)
	for _, c := range []*color.Color{ok, bad, dim} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	var buf bytes.Buffer
	if res.Valid {
		fmt.Fprintln(&buf, ok.Sprint("ok"))
		_, err := w.Write(buf.Bytes())
		return err
	}
	e := res.Issue
	fmt.Fprintf(&buf, "%s %s\n", bad.Sprintf("%s [%s]", e.Title, e.Code), dim.Sprint("at "+e.Path))
	fmt.Fprintf(&buf, "  %s\n", cause.Error())
	if e.Value != nil {
		fmt.Fprintf(&buf, "  value: %s\n", renderValue(e.Value, colored))
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func renderValue(v any, colored bool) string {
	if colored {
		if b, err := prettyjson.Marshal(v); err == nil {
			return string(b)
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

func asValueError(err error) *conform.ValueError {
	var ve *conform.ValueError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
