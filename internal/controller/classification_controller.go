package controller

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"loan-triage-be/internal/constant"
	"loan-triage-be/internal/dto"
	"loan-triage-be/internal/pkg/serverutils"
	"loan-triage-be/internal/service"
	"loan-triage-be/pkg/classify"
	"loan-triage-be/pkg/extract"
	"loan-triage-be/pkg/llm"
)

type IClassificationController interface {
	RegisterRoutes(r fiber.Router)
	Classify(ctx *fiber.Ctx) error
	ClassifyText(ctx *fiber.Ctx) error
	ListRequests(ctx *fiber.Ctx) error
}

type classificationController struct {
	classificationService service.IClassificationService
	uploadDir             string
}

func NewClassificationController(classificationService service.IClassificationService, uploadDir string) IClassificationController {
	return &classificationController{
		classificationService: classificationService,
		uploadDir:             uploadDir,
	}
}

func (c *classificationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/classification/v1")
	h.Post("classify", c.Classify)
	h.Post("classify-text", c.ClassifyText)
	h.Get("requests", c.ListRequests)
}

// Classify accepts a multipart upload with an "email" file and optional
// "attachments" files. The response is always HTTP 200; failures are
// reported in the body so upstream mail gateways never retry blindly.
func (c *classificationController) Classify(ctx *fiber.Ctx) error {
	emailFile, err := ctx.FormFile("email")
	if err != nil {
		return ctx.JSON(fiber.Map{"Error": "Missing 'email' file in request."})
	}

	if err := os.MkdirAll(c.uploadDir, 0o755); err != nil {
		return ctx.JSON(errorBody(err))
	}

	emailPath, err := c.saveUpload(ctx, emailFile.Filename, emailFile)
	if err != nil {
		return ctx.JSON(errorBody(err))
	}
	defer os.Remove(emailPath)

	var attachmentPaths []string
	if form, err := ctx.MultipartForm(); err == nil && form != nil {
		for _, attachment := range form.File["attachments"] {
			path, err := c.saveUpload(ctx, attachment.Filename, attachment)
			if err != nil {
				return ctx.JSON(errorBody(err))
			}
			defer os.Remove(path)
			attachmentPaths = append(attachmentPaths, path)
		}
	}

	res, err := c.classificationService.ClassifyDocument(ctx.Context(), emailPath, attachmentPaths)
	if err != nil {
		return ctx.JSON(errorBody(err))
	}

	return ctx.JSON(res)
}

func (c *classificationController) ClassifyText(ctx *fiber.Ctx) error {
	var req dto.ClassifyTextRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.JSON(fiber.Map{"Error": "Invalid JSON body."})
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.JSON(fiber.Map{"Error": err.Error()})
	}

	res, err := c.classificationService.ClassifyText(ctx.Context(), req.Text)
	if err != nil {
		return ctx.JSON(errorBody(err))
	}

	return ctx.JSON(res)
}

func (c *classificationController) ListRequests(ctx *fiber.Ctx) error {
	res, err := c.classificationService.ListRequests(ctx.Context())
	if err != nil {
		return ctx.JSON(errorBody(err))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list requests", res))
}

// saveUpload stores a multipart file under a collision-proof name. Files
// uploaded without an extension are treated as plain text.
func (c *classificationController) saveUpload(ctx *fiber.Ctx, originalName string, file *multipart.FileHeader) (string, error) {
	name := filepath.Base(originalName)
	if filepath.Ext(name) == "" {
		name += ".txt"
	}

	path := filepath.Join(c.uploadDir, fmt.Sprintf("%s_%s", uuid.New().String(), name))
	if err := ctx.SaveFile(file, path); err != nil {
		return "", err
	}
	return path, nil
}

func errorBody(err error) fiber.Map {
	var rateErr *llm.RateLimitError
	if errors.As(err, &rateErr) {
		return fiber.Map{"Error": fmt.Sprintf(constant.MsgRateLimitedFormat, rateErr.RetryAfterSeconds)}
	}

	if errors.Is(err, extract.ErrUnsupportedFormat) {
		return fiber.Map{"Error": constant.MsgUnsupportedFormat}
	}

	var malformedErr *classify.MalformedResponseError
	if errors.As(err, &malformedErr) {
		return fiber.Map{"Error": "Model returned an unparseable classification. Please try again."}
	}

	return fiber.Map{"Error": constant.MsgGenericFailure}
}
