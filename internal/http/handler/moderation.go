package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"imagehub/internal/imageid"
	"imagehub/internal/model"
	"imagehub/internal/service"
)

// VerificationPortal handles GET /image/verification-portal: an HTML view
// embedding one image pending review, or an empty view when nothing is
// pending. Selection is unlocked, so two concurrent reviewers may be shown
// the same image.
func VerificationPortal(svc service.ImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pending, err := svc.NextUnverified(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Type("html").SendString(renderVerificationPortal(pending))
	}
}

func renderVerificationPortal(pending *service.PendingImage) string {
	if pending == nil {
		return `<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8" /><title>Verification Portal</title></head>
<body>
  <h1>Verification Portal</h1>
  <p>No images pending review.</p>
</body>
</html>`
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8" /><title>Verification Portal</title></head>
<body>
  <h1>Verification Portal</h1>
  <p>Image %[1]s</p>
  <img src="data:%[2]s;base64,%[3]s" alt="pending image" />
  <form method="post" action="/image/update-status">
    <input type="hidden" name="_id" value="%[1]s" />
    <button type="submit" name="status" value="verified">Verify</button>
    <button type="submit" name="status" value="rejected">Reject</button>
  </form>
</body>
</html>`, pending.ID, pending.ContentType, pending.ContentBase64)
}

// UpdateImageStatus handles POST /image/update-status with form fields _id
// and status. The new status must be a member of the closed enumeration.
//
// A well-formed id with no matching image answers 200 with a null _id rather
// than a 404; that mirrors the store's find-and-modify result and is a known
// gap kept deliberately.
func UpdateImageStatus(svc service.ImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := imageid.Parse(c.FormValue("_id"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		status, err := model.ParseStatus(c.FormValue("status"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_STATUS", "new status not received")
		}

		img, err := svc.UpdateStatus(c.UserContext(), id, status)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		if img == nil {
			return c.JSON(fiber.Map{"_id": nil})
		}
		return c.JSON(fiber.Map{"_id": img.ID})
	}
}

// DeleteRejected handles DELETE /image/delete-rejected, purging every image
// marked rejected. There is no confirmation step and no undo.
func DeleteRejected(svc service.ImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		count, err := svc.DeleteRejected(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"deleted_count": count})
	}
}
