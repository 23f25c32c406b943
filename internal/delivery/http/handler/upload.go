package handler

import (
	"fmt"
	"io"

	"github.com/Knnivedh/job-rec/internal/domain/resume"

	"github.com/gofiber/fiber/v3"
)

type uploadedFile struct {
	Name     string
	MimeType string
	Size     int64
	Data     []byte
}

// readFormFile loads a multipart file. ok is false when the field is absent.
// At most one byte past the upload limit is read, enough for the caller to
// reject the file.
func readFormFile(c fiber.Ctx, field string) (uploadedFile, bool, error) {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil {
		return uploadedFile{}, false, nil
	}

	f, err := fh.Open()
	if err != nil {
		return uploadedFile{}, true, fmt.Errorf("open form file: %w", err)
	}
	defer f.Close()

	out := uploadedFile{
		Name:     fh.Filename,
		MimeType: fh.Header.Get("Content-Type"),
		Size:     fh.Size,
	}
	out.Data, err = io.ReadAll(io.LimitReader(f, resume.MaxUploadBytes+1))
	if err != nil {
		return uploadedFile{}, true, fmt.Errorf("read form file: %w", err)
	}
	return out, true, nil
}
