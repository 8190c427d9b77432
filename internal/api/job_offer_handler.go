package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jobboard-service/internal/model"
	"jobboard-service/internal/service"
	"jobboard-service/internal/upload"
)

type JobOfferHandler struct {
	offerService service.JobOfferService
	images       *upload.ImageStore
}

func NewJobOfferHandler(offerService service.JobOfferService, images *upload.ImageStore) *JobOfferHandler {
	return &JobOfferHandler{
		offerService: offerService,
		images:       images,
	}
}

func (h *JobOfferHandler) List(c *fiber.Ctx) error {
	offers, err := h.offerService.List(c.Context())

	if err != nil {
		slog.ErrorContext(c.UserContext(), "Failed to list job offers", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch job offers"})
	}

	return c.Status(fiber.StatusOK).JSON(offers)
}

func (h *JobOfferHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid job offer ID format"})
	}

	offer, err := h.offerService.GetByID(c.Context(), id)

	if err != nil {
		if errors.Is(err, service.ErrOfferNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No valid entry found for provided ID"})
		}

		slog.ErrorContext(c.UserContext(), "Failed to fetch job offer", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch job offer"})
	}

	return c.Status(fiber.StatusOK).JSON(offer)
}

// Create accepts a multipart form with the offer fields and an optional
// "logo" image part. The image is validated and stored before the document
// is created; a rejected upload aborts the request.
func (h *JobOfferHandler) Create(c *fiber.Ctx) error {
	callerID, err := GetUserIDFromLocals(c)

	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	offer := &model.JobOffer{
		Title:       c.FormValue("title"),
		Position:    c.FormValue("position"),
		Firm:        c.FormValue("firm"),
		Dimensions:  c.FormValue("dimensions"),
		Description: c.FormValue("description"),
		City:        c.FormValue("city"),
		Street:      c.FormValue("street"),
		Number:      c.FormValue("number"),
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		offer.Tags = model.Tags(form.Value["tags"])
	}

	if fileHeader, err := c.FormFile("logo"); err == nil && fileHeader != nil {
		path, err := h.images.Save(fileHeader)
		if err != nil {
			if errors.Is(err, upload.ErrFileTypeNotAllowed) || errors.Is(err, upload.ErrFileTooLarge) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}

			slog.ErrorContext(c.UserContext(), "Failed to store uploaded image", slog.String("error", err.Error()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not store uploaded image"})
		}
		offer.LogoPath = &path
	}

	createdOffer, err := h.offerService.Create(c.Context(), callerID, offer)

	if err != nil {
		slog.ErrorContext(c.UserContext(), "Failed to create job offer", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create job offer"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"jobOffer": createdOffer})
}

func (h *JobOfferHandler) Patch(c *fiber.Ctx) error {
	callerID, err := GetUserIDFromLocals(c)

	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid job offer ID format"})
	}

	var edits []service.FieldEdit
	if err := c.BodyParser(&edits); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	err = h.offerService.Patch(c.Context(), callerID, id, edits)

	if err != nil {
		switch {
		case errors.Is(err, service.ErrOfferNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No valid entry found for provided ID"})
		case errors.Is(err, service.ErrNotOwner):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No permission"})
		case errors.Is(err, service.ErrFieldNotEditable):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			slog.ErrorContext(c.UserContext(), "Failed to patch job offer", slog.String("error", err.Error()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update job offer"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Updated successfully"})
}

func (h *JobOfferHandler) Delete(c *fiber.Ctx) error {
	callerID, err := GetUserIDFromLocals(c)

	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid job offer ID format"})
	}

	err = h.offerService.Delete(c.Context(), callerID, id)

	if err != nil {
		switch {
		case errors.Is(err, service.ErrOfferNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No valid entry found for provided ID"})
		case errors.Is(err, service.ErrNotOwner):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No permission"})
		default:
			slog.ErrorContext(c.UserContext(), "Failed to delete job offer", slog.String("error", err.Error()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete job offer"})
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}
