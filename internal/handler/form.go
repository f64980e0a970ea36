package handler

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/startupathon-api/internal/dto"
	appErrors "github.com/noah-isme/startupathon-api/pkg/errors"
)

// formOverhead is the room left above the upload ceiling for the other multipart fields.
const formOverhead = dto.MaxFieldSize

// readForm decodes a multipart, urlencoded or JSON body into a dto.Form. Multipart bodies
// are streamed so a non-image file is refused before its content is read. Bodies larger than
// maxUpload plus formOverhead are refused as too large; pass 0 for bodies without files.
func readForm(c *gin.Context, maxUpload int64) (*dto.Form, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUpload+formOverhead)

	mediaType, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))
	switch {
	case mediaType == "multipart/form-data":
		reader, err := c.Request.MultipartReader()
		if err != nil {
			return nil, formError(err)
		}
		form, err := dto.ReadMultipart(reader, maxUpload)
		if err != nil {
			return nil, formError(err)
		}
		return form, nil
	case mediaType == "application/x-www-form-urlencoded":
		if err := c.Request.ParseForm(); err != nil {
			return nil, formError(err)
		}
		return dto.NewForm(c.Request.PostForm, nil), nil
	case mediaType == "" || mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		form, err := dto.FormFromJSON(c.Request.Body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, formError(err)
			}
			return nil, err
		}
		return form, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported content type "+mediaType)
	}
}

func formError(err error) error {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return appErrors.Wrap(err, appErrors.ErrFileTooLarge.Code, appErrors.ErrFileTooLarge.Status, "request body too large")
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed form body")
}
