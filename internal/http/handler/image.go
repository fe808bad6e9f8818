package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"imagehub/internal/imageid"
	"imagehub/internal/service"
)

// parseRealFlag decodes the "real" form field. The contract is deliberately
// lenient: the exact lowercase token "true" is true and every other value
// (including "True", "1", or garbage) is false. Callers must only ever send
// lowercase "true" or "false".
func parseRealFlag(raw string) bool {
	return raw == "true"
}

// formValue returns the first value for a multipart form field, reporting
// whether the key was present at all. A present-but-empty field is not
// missing.
func formValue(form *multipart.Form, key string) (string, bool) {
	vals, ok := form.Value[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// UploadImage handles POST /image/create: multipart file plus date, theme,
// and real form fields. New images always start unverified.
//
// Validation order: the metadata schema is checked first (400), then the file
// itself (415). Declared content type must begin with "image/"; the actual
// bytes are not inspected.
func UploadImage(svc service.ImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_SCHEMA", "invalid schema")
		}

		dateRaw, ok := formValue(form, "date")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_SCHEMA", "invalid schema")
		}
		date, err := strconv.ParseInt(dateRaw, 10, 64)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_SCHEMA", "invalid schema")
		}
		theme, ok := formValue(form, "theme")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_SCHEMA", "invalid schema")
		}
		realRaw, ok := formValue(form, "real")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_SCHEMA", "invalid schema")
		}

		files := form.File["file"]
		if len(files) == 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_SCHEMA", "invalid schema")
		}
		fh := files[0]

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		rec, err := svc.Upload(c.UserContext(), f, service.UploadInput{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Date:        date,
			Theme:       theme,
			Real:        parseRealFlag(realRaw),
		})
		if err != nil {
			if errors.Is(err, service.ErrUnsupportedMedia) {
				return writeError(c, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "invalid file")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(rec)
	}
}

// ListImages handles GET /image/read: a diagnostic HTML listing of every
// stored image. The markup is not a contract.
func ListImages(svc service.ImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		imgs, err := svc.ListAll(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		var b strings.Builder
		b.WriteString("<ul>\n")
		for i := range imgs {
			fmt.Fprintf(&b, "<li><a href=\"read/%s\">%s - %s</a></li>\n", imgs[i].ID, imgs[i].Filename, imgs[i].ID)
		}
		b.WriteString("</ul>")
		return c.Type("html").SendString(b.String())
	}
}

// ReadImage handles GET /image/read/:id, streaming the raw bytes back with
// the stored content type and length.
func ReadImage(svc service.ImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := imageid.Parse(c.Params("id"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		rc, img, err := svc.Content(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "image not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		c.Set(fiber.HeaderContentType, img.ContentType)
		return c.SendStream(rc, int(img.Size))
	}
}

// ImageProperties handles GET /image/read/:id/properties, returning the
// record JSON for one image.
func ImageProperties(svc service.ImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := imageid.Parse(c.Params("id"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		rec, err := svc.Properties(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "image not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(rec)
	}
}

// DeleteImage handles DELETE /image/:id, returning the record of the deleted
// image as it was before deletion.
func DeleteImage(svc service.ImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := imageid.Parse(c.Params("id"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		rec, err := svc.Delete(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "image not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(rec)
	}
}
