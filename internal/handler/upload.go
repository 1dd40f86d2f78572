package handler

import (
	"io"
	"strings"

	"saathi/internal/domain"

	"github.com/gofiber/fiber/v2"
)

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm)
}

// readUpload returns the named multipart file. A missing file yields empty
// data and no error so the service reports its own message.
func readUpload(c *fiber.Ctx, field string) (string, []byte, error) {
	if !isMultipart(c) {
		return "", nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return "", nil, domain.NewInvalidInputError("Invalid multipart form")
	}
	files := form.File[field]
	if len(files) == 0 {
		return "", nil, nil
	}

	fh := files[0]
	f, err := fh.Open()
	if err != nil {
		return "", nil, domain.NewInternalError("Failed to read uploaded file", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, domain.NewInternalError("Failed to read uploaded file", err)
	}
	return fh.Filename, data, nil
}
