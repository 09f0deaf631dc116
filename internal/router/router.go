package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/resume-screener/internal/handlers"
	"alfredoptarigan/resume-screener/internal/views"
)

type Handlers struct {
	Page   *handlers.PageHandler
	Screen *handlers.ScreenHandler
	Run    *handlers.RunHandler
}

// NewApp creates the Fiber app with middleware and the page views.
// bodyLimit bounds a whole multipart request.
func NewApp(bodyLimit int, logRequests bool) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Resume Screening Assistant",
		ReadTimeout:  30 * time.Second,
		BodyLimit:    bodyLimit,
		Views:        views.NewEngine(),
		ErrorHandler: ErrorHandler,
	})

	app.Use(recover.New())
	if logRequests {
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "2006-01-02 15:04:05",
		}))
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	return app
}

// Register wires all routes onto app.
func Register(app *fiber.App, h Handlers) {
	app.Get("/", h.Page.HandleIndex)
	app.Post("/screen", h.Page.HandleScreen)

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/screen", h.Screen.HandleScreen)
	api.Get("/runs/:id", h.Run.HandleGetRun)
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
