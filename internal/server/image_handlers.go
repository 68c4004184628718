package server

import (
	"zogakzip/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ImageUploadResponse is the API response after uploading an image.
type ImageUploadResponse struct {
	ImageURL string `json:"imageUrl"`
}

// UploadImage handles POST /api/image. The file is stored verbatim; no
// resizing or transcoding happens server-side.
func (s *Server) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("No file uploaded"))
	}

	url, err := s.uploads.Save(file)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Unable to store uploaded file"))
	}

	return c.JSON(ImageUploadResponse{ImageURL: url})
}
