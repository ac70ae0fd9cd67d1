// Package engine turns JSON and YAML documents into the generic value trees
// the validator consumes: nil, bool, json.Number, string, []any and
// map[string]any.
package engine

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	json "github.com/goccy/go-json"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is the minimal interface the decoder needs.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// Options controls value decoding.
type Options struct {
	// RejectDuplicateKeys fails when an object repeats a key. Otherwise the
	// last occurrence wins, like encoding/json.
	RejectDuplicateKeys bool
	// MaxDepth bounds container nesting; 0 means unlimited.
	MaxDepth int
}

// DecodeError reports a malformed or rejected document.
type DecodeError struct {
	Path    string
	Offset  int64
	Message string
}

func (e *DecodeError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at %s (offset %d)", e.Message, e.Path, e.Offset)
	}
	return fmt.Sprintf("%s at %s", e.Message, e.Path)
}

// ErrTrailingData is returned when a document holds more than one value.
var ErrTrailingData = errors.New("engine: unexpected data after top-level value")

// DecodeJSON decodes a single JSON document.
func DecodeJSON(data []byte, opt Options) (any, error) {
	src := NewBytes(data)
	v, err := DecodeValue(src, opt)
	if err != nil {
		return nil, err
	}
	if _, err := src.NextToken(); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	return v, nil
}

// DecodeValue builds one value from src.
func DecodeValue(src TokenSource, opt Options) (any, error) {
	d := decoder{src: src, opt: opt}
	tok, err := src.NextToken()
	if err != nil {
		return nil, err
	}
	return d.value(tok, "$", 0)
}

type decoder struct {
	src TokenSource
	opt Options
}

func (d *decoder) fail(path, msg string) error {
	return &DecodeError{Path: path, Offset: d.src.Location(), Message: msg}
}

func (d *decoder) value(tok Token, path string, depth int) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		if d.opt.MaxDepth > 0 && depth >= d.opt.MaxDepth {
			return nil, d.fail(path, "max depth exceeded")
		}
		return d.object(path, depth+1)
	case KindBeginArray:
		if d.opt.MaxDepth > 0 && depth >= d.opt.MaxDepth {
			return nil, d.fail(path, "max depth exceeded")
		}
		return d.array(path, depth+1)
	case KindString:
		return tok.String, nil
	case KindNumber:
		return json.Number(tok.Number), nil
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, io.ErrUnexpectedEOF
	}
}

func (d *decoder) object(path string, depth int) (any, error) {
	m := make(map[string]any)
	for {
		tok, err := d.src.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndObject {
			return m, nil
		}
		if tok.Kind != KindKey {
			return nil, io.ErrUnexpectedEOF
		}
		key := tok.String
		kpath := path + "." + key
		if _, dup := m[key]; dup && d.opt.RejectDuplicateKeys {
			return nil, d.fail(kpath, "duplicate key "+strconv.Quote(key))
		}
		vt, err := d.src.NextToken()
		if err != nil {
			return nil, err
		}
		v, err := d.value(vt, kpath, depth)
		if err != nil {
			return nil, err
		}
		m[key] = v
	}
}

func (d *decoder) array(path string, depth int) (any, error) {
	arr := []any{}
	for {
		tok, err := d.src.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := d.value(tok, path+"["+strconv.Itoa(len(arr))+"]", depth)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}
