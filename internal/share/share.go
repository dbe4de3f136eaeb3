// Package share encodes the whole folder collection into a link and reads it
// back. The payload is base64 of a JSON object carried in the "shared" query
// parameter.
package share

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/theirongolddev/spendfold/internal/model"
	"github.com/theirongolddev/spendfold/internal/pipeline"
)

// Param is the query parameter that carries the payload.
const Param = "shared"

var (
	// ErrNoSharedParam is returned when a link has no shared parameter.
	ErrNoSharedParam = errors.New("link has no shared parameter")
	// ErrMalformed is returned for payloads that are not base64 JSON.
	ErrMalformed = errors.New("malformed shared payload")
)

// Payload is the shared snapshot: the folders, plus the flattened expense
// list for readers that only want rows.
type Payload struct {
	Folders  []model.Folder      `json:"folders"`
	Expenses []model.FlatExpense `json:"expenses"`
}

// NewPayload builds a payload from the current folders.
func NewPayload(folders []model.Folder) Payload {
	return Payload{
		Folders:  model.CloneFolders(folders),
		Expenses: pipeline.Flatten(folders),
	}
}

// Encode returns the standard base64 encoding of the payload's JSON.
func Encode(p Payload) (string, error) {
	if p.Folders == nil {
		p.Folders = []model.Folder{}
	}
	if p.Expenses == nil {
		p.Expenses = []model.FlatExpense{}
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encoding payload: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// Link sets the shared parameter on baseURL, keeping any other parameters.
func Link(baseURL string, p Payload) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base url: %w", err)
	}
	enc, err := Encode(p)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set(Param, enc)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Decode reverses Encode. It tolerates URL-safe base64, missing padding, and
// '+' characters that query decoding turned into spaces.
func Decode(s string) (Payload, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Payload{}, fmt.Errorf("%w: empty", ErrMalformed)
	}
	s = strings.ReplaceAll(s, " ", "+")

	raw, err := decodeBase64(s)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if p.Folders == nil {
		return Payload{}, fmt.Errorf("%w: no folders", ErrMalformed)
	}
	for i := range p.Folders {
		if p.Folders[i].Expenses == nil {
			p.Folders[i].Expenses = []model.Expense{}
		}
	}
	if err := model.ValidateFolders(p.Folders); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return p, nil
}

func decodeBase64(s string) ([]byte, error) {
	encodings := []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	}
	var firstErr error
	for _, enc := range encodings {
		b, err := enc.DecodeString(s)
		if err == nil {
			return b, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}

// FromLink pulls the payload out of a link's shared parameter.
func FromLink(rawURL string) (Payload, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return Payload{}, fmt.Errorf("parsing link: %w", err)
	}
	v := u.Query().Get(Param)
	if v == "" {
		return Payload{}, ErrNoSharedParam
	}
	return Decode(v)
}

// Parse accepts either a full link or a bare encoded payload.
func Parse(s string) (Payload, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "://") || strings.Contains(s, "?") {
		return FromLink(s)
	}
	return Decode(s)
}

// Replacer swaps the whole folder collection.
type Replacer interface {
	Replace(folders []model.Folder) error
}

// Consume decodes s and replaces the collection held by r. On any error the
// collection is left untouched.
func Consume(r Replacer, s string) (Payload, error) {
	p, err := Parse(s)
	if err != nil {
		return Payload{}, err
	}
	if err := r.Replace(p.Folders); err != nil {
		return Payload{}, fmt.Errorf("importing shared folders: %w", err)
	}
	return p, nil
}
