// Package middleware validates JSON request bodies against a schema at the
// HTTP boundary.
package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/reoring/conform"
	js "github.com/reoring/conform/jsonschema"
	"github.com/reoring/conform/report"
)

// ctxKeyValue is the context key for the validated request value.
type ctxKeyValue struct{}

// boxed keeps a JSON null distinguishable from a missing value.
type boxed struct{ v any }

// ContextWithValue attaches a validated value to the context.
func ContextWithValue(ctx context.Context, v any) context.Context {
	return context.WithValue(ctx, ctxKeyValue{}, boxed{v})
}

// ValueFromContext retrieves the value stored by ValidateJSON.
func ValueFromContext(ctx context.Context) (any, bool) {
	b, ok := ctx.Value(ctxKeyValue{}).(boxed)
	return b.v, ok
}

// DefaultValueOpt returns a recommended default for HTTP JSON boundaries.
// - Duplicate keys are errors
// - Nesting is capped
func DefaultValueOpt() conform.ValueOpt {
	return conform.ValueOpt{RejectDuplicateKeys: true, MaxDepth: 256}
}

// Options configures ValidateJSON.
type Options struct {
	Value    conform.ValueOpt
	Validate conform.Options
	// Lang selects the language of issue titles in error responses.
	Lang string
	// MaxBodyBytes limits the request body; 0 means no limit.
	MaxBodyBytes int64
}

// ErrorPayload shapes a failed validation for JSON responses.
func ErrorPayload(err error, lang string) report.Result {
	return report.Build(err, lang)
}

// ValidateJSON decodes the request body and validates it against root. On
// success the value is stored in the request context and the body is
// restored for the next handler. Malformed bodies and non-conforming values
// get 400; a broken schema gets 500.
func ValidateJSON(root *js.Root, opt Options) func(http.Handler) http.Handler {
	if opt.Value == (conform.ValueOpt{}) {
		opt.Value = DefaultValueOpt()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body := io.Reader(r.Body)
			if opt.MaxBodyBytes > 0 {
				body = http.MaxBytesReader(w, r.Body, opt.MaxBodyBytes)
			}
			data, err := io.ReadAll(body)
			if err != nil {
				writeError(w, r, http.StatusBadRequest, err, opt.Lang)
				return
			}
			v, err := conform.ParseValueWith(data, opt.Value)
			if err != nil {
				writeError(w, r, http.StatusBadRequest, err, opt.Lang)
				return
			}
			if err := conform.ValidateWith(opt.Validate, "$", root.Schema, root.Definitions, v); err != nil {
				status := http.StatusBadRequest
				if conform.IsSchemaError(err) {
					status = http.StatusInternalServerError
				}
				writeError(w, r, status, err, opt.Lang)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(data))
			next.ServeHTTP(w, r.WithContext(ContextWithValue(r.Context(), v)))
		})
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error, lang string) {
	zerolog.Ctx(r.Context()).Debug().Err(err).Int("status", status).Str("path", r.URL.Path).Msg("request rejected")
	b, merr := json.Marshal(ErrorPayload(err, lang))
	if merr != nil {
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
