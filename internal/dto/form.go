package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	appErrors "github.com/noah-isme/startupathon-api/pkg/errors"
)

// Form is the flattened body of a create or update request, whichever encoding it arrived
// in. Decoders read typed values from it and reject anything they do not expect.
type Form struct {
	values map[string]string
	files  map[string][]*Upload
}

// NewForm wraps already parsed form values and files.
func NewForm(values map[string][]string, files map[string][]*Upload) *Form {
	f := &Form{values: make(map[string]string, len(values)), files: files}
	for k, v := range values {
		if len(v) > 0 {
			f.values[k] = v[len(v)-1]
		}
	}
	if f.files == nil {
		f.files = map[string][]*Upload{}
	}
	return f
}

// FormFromJSON reads a flat JSON object. Strings, booleans and numbers are accepted;
// null is treated as an absent field.
func FormFromJSON(r io.Reader) (*Form, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		if err == io.EOF {
			return NewForm(nil, nil), nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed JSON body")
	}

	f := NewForm(nil, nil)
	var nested []string
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
		case string:
			f.values[k] = val
		case bool:
			f.values[k] = strconv.FormatBool(val)
		case json.Number:
			f.values[k] = val.String()
		default:
			nested = append(nested, k)
		}
	}
	if len(nested) > 0 {
		sort.Strings(nested)
		return nil, appErrors.WithFields(appErrors.ErrValidation, "fields must be scalar values", nested...)
	}
	return f, nil
}

// Only rejects the form when it carries keys outside allowed.
func (f *Form) Only(allowed ...string) error {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	var unknown []string
	for k := range f.values {
		if _, ok := set[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	for k := range f.files {
		if _, ok := set[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return appErrors.WithFields(appErrors.ErrValidation, "unknown fields", unknown...)
}

// String returns the trimmed value of key, or nil when the key is absent.
func (f *Form) String(key string) *string {
	v, ok := f.values[key]
	if !ok {
		return nil
	}
	v = strings.TrimSpace(v)
	return &v
}

// Bool accepts true/false in any case.
func (f *Form) Bool(key string) (*bool, error) {
	v := f.String(key)
	if v == nil {
		return nil, nil
	}
	switch strings.ToLower(*v) {
	case "true":
		b := true
		return &b, nil
	case "false":
		b := false
		return &b, nil
	default:
		return nil, invalidField(key, "must be true or false")
	}
}

// Int parses a base-10 integer.
func (f *Form) Int(key string) (*int, error) {
	v := f.String(key)
	if v == nil || *v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(*v)
	if err != nil {
		return nil, invalidField(key, "must be an integer")
	}
	return &n, nil
}

// Date accepts a calendar date (2006-01-02) or an RFC 3339 timestamp and returns the
// calendar day at midnight UTC. An empty value counts as absent so required checks catch it.
func (f *Form) Date(key string) (*time.Time, error) {
	v := f.String(key)
	if v == nil || *v == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", *v); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, *v)
	if err != nil {
		return nil, invalidField(key, "must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &day, nil
}

// Upload returns the single file attached under key, or nil when there is none.
func (f *Form) Upload(key string) (*Upload, error) {
	uploads := f.files[key]
	switch len(uploads) {
	case 0:
		return nil, nil
	case 1:
		return uploads[0], nil
	default:
		return nil, invalidField(key, "only one file may be uploaded")
	}
}

func invalidField(key, reason string) error {
	return appErrors.WithFields(appErrors.ErrValidation, fmt.Sprintf("%s %s", key, reason), key)
}

// Upload is a file received with a request, not yet stored.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	open        func() (io.ReadCloser, error)
}

// Open returns a fresh reader over the file content.
func (u *Upload) Open() (io.ReadCloser, error) {
	return u.open()
}

// UploadFromBytes wraps in-memory content.
func UploadFromBytes(filename, contentType string, data []byte) *Upload {
	return &Upload{
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}
