package dto

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/startupathon-api/pkg/errors"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

type testPart struct {
	field, filename, contentType string
	data                         []byte
}

func multipartReader(t *testing.T, fields map[string]string, parts ...testPart) *multipart.Reader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, p := range parts {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="`+p.field+`"; filename="`+p.filename+`"`)
		if p.contentType != "" {
			h.Set("Content-Type", p.contentType)
		}
		pw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = pw.Write(p.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return multipart.NewReader(body, w.Boundary())
}

func TestReadMultipartCollectsValuesAndImage(t *testing.T) {
	r := multipartReader(t, map[string]string{"title": "Clean Water"},
		testPart{field: "image", filename: "a.png", contentType: "image/png", data: pngMagic})

	form, err := ReadMultipart(r, 1<<20)
	require.NoError(t, err)
	assert.Equal(t, "Clean Water", *form.String("title"))

	upload, err := form.Upload("image")
	require.NoError(t, err)
	require.NotNil(t, upload)
	assert.Equal(t, "image/png", upload.ContentType)
	rc, err := upload.Open()
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, pngMagic, data)
}

func TestReadMultipartRejectsNonImageRegardlessOfSize(t *testing.T) {
	for name, size := range map[string]int{"small": 10, "over limit": 5 << 20} {
		t.Run(name, func(t *testing.T) {
			r := multipartReader(t, nil, testPart{field: "image", filename: "notes.txt", contentType: "text/plain", data: bytes.Repeat([]byte("x"), size)})
			_, err := ReadMultipart(r, 3<<20)
			assert.ErrorIs(t, err, appErrors.ErrInvalidUpload)
		})
	}
}

func TestReadMultipartSniffsUndeclaredType(t *testing.T) {
	r := multipartReader(t, nil, testPart{field: "image", filename: "a", data: pngMagic})
	form, err := ReadMultipart(r, 1<<20)
	require.NoError(t, err)
	upload, err := form.Upload("image")
	require.NoError(t, err)
	assert.Equal(t, "image/png", upload.ContentType)

	r = multipartReader(t, nil, testPart{field: "image", filename: "a", contentType: "application/octet-stream", data: bytes.Repeat([]byte("plain text "), 1<<19)})
	_, err = ReadMultipart(r, 1<<20)
	assert.ErrorIs(t, err, appErrors.ErrInvalidUpload)
}

func TestReadMultipartSizeBoundary(t *testing.T) {
	const limit = 1 << 20
	exact := append(append([]byte{}, pngMagic...), make([]byte, limit-len(pngMagic))...)

	form, err := ReadMultipart(multipartReader(t, nil, testPart{field: "image", filename: "a.png", contentType: "image/png", data: exact}), limit)
	require.NoError(t, err)
	upload, err := form.Upload("image")
	require.NoError(t, err)
	assert.Equal(t, int64(limit), upload.Size)

	over := append(exact, 0)
	_, err = ReadMultipart(multipartReader(t, nil, testPart{field: "image", filename: "a.png", contentType: "image/png", data: over}), limit)
	assert.ErrorIs(t, err, appErrors.ErrFileTooLarge)
}

func TestReadMultipartWithoutUploadsRefusesFiles(t *testing.T) {
	r := multipartReader(t, nil, testPart{field: "avatar", filename: "a.png", contentType: "image/png", data: pngMagic})
	_, err := ReadMultipart(r, 0)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}
