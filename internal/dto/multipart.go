package dto

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	appErrors "github.com/noah-isme/startupathon-api/pkg/errors"
)

// sniffLen is how much of an undeclared file part is inspected before deciding its type.
const sniffLen = 3072

// MaxFieldSize bounds a single non-file multipart value.
const MaxFieldSize int64 = 1 << 20

// ReadMultipart streams a multipart body into a Form. A file part is typed from its declared
// Content-Type, or sniffed from its first bytes when none is declared, and refused with
// InvalidUpload before its body is read if it is not an image. Only image parts count against
// maxUpload. A maxUpload of zero refuses file parts outright.
func ReadMultipart(r *multipart.Reader, maxUpload int64) (*Form, error) {
	values := map[string][]string{}
	files := map[string][]*Upload{}

	for {
		part, err := r.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		key := part.FormName()
		if key == "" {
			_ = part.Close()
			continue
		}

		if part.FileName() == "" {
			raw, err := io.ReadAll(io.LimitReader(part, MaxFieldSize+1))
			_ = part.Close()
			if err != nil {
				return nil, err
			}
			if int64(len(raw)) > MaxFieldSize {
				return nil, invalidField(key, "is too long")
			}
			values[key] = append(values[key], string(raw))
			continue
		}

		if maxUpload <= 0 {
			_ = part.Close()
			return nil, invalidField(key, "does not accept files")
		}
		upload, err := readFilePart(part, key, maxUpload)
		_ = part.Close()
		if err != nil {
			return nil, err
		}
		files[key] = append(files[key], upload)
	}

	return NewForm(values, files), nil
}

func readFilePart(part *multipart.Part, key string, maxUpload int64) (*Upload, error) {
	body := bufio.NewReaderSize(part, sniffLen)
	contentType := declaredType(part.Header.Get("Content-Type"))
	if contentType == "" {
		head, err := body.Peek(sniffLen)
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
			return nil, err
		}
		contentType, _, _ = mime.ParseMediaType(mimetype.Detect(head).String())
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, appErrors.WithFields(appErrors.ErrInvalidUpload, "Only image files are allowed", key)
	}

	data, err := io.ReadAll(io.LimitReader(body, maxUpload+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxUpload {
		return nil, appErrors.WithFields(appErrors.ErrFileTooLarge,
			fmt.Sprintf("File size exceeds the %s limit", SizeLabel(maxUpload)), key)
	}
	return UploadFromBytes(part.FileName(), contentType, data), nil
}

// declaredType returns the lowercased media type of a part header, or "" when the header
// is absent, unparsable or the generic application/octet-stream.
func declaredType(header string) string {
	if header == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil || mediaType == "application/octet-stream" {
		return ""
	}
	return strings.ToLower(mediaType)
}

// SizeLabel renders a byte limit the way error messages quote it.
func SizeLabel(n int64) string {
	const mib = 1024 * 1024
	if n%mib == 0 {
		return fmt.Sprintf("%dMB", n/mib)
	}
	return fmt.Sprintf("%d bytes", n)
}
