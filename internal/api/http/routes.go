package httpapi

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/i474232898/weather-screen/internal/screen"
	"github.com/i474232898/weather-screen/internal/weather"
)

var validate = validator.New()

// Screen is the set of user interactions the view server forwards.
type Screen interface {
	State() screen.State
	ToggleSearch()
	TextChanged(text string)
	Select(ctx context.Context, loc weather.Location)
	Refresh(ctx context.Context)
	DismissNotice()
}

// ErrorHandler renders every handler error as a JSON body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// RegisterRoutes wires the screen interactions into the Fiber app. Every
// route answers with the freshly rendered view.
func RegisterRoutes(app *fiber.App, s Screen) {
	v1 := app.Group("/api/v1")

	render := func(c *fiber.Ctx) error {
		return c.JSON(screen.Render(s.State()))
	}

	v1.Get("/screen", render)

	v1.Post("/search/toggle", func(c *fiber.Ctx) error {
		s.ToggleSearch()
		return render(c)
	})

	v1.Post("/search", func(c *fiber.Ctx) error {
		var req searchRequest
		if err := bindBody(c, &req); err != nil {
			return err
		}
		s.TextChanged(req.Text)
		return render(c)
	})

	v1.Post("/select", func(c *fiber.Ctx) error {
		var req selectRequest
		if err := bindBody(c, &req); err != nil {
			return err
		}
		s.Select(c.UserContext(), req.toLocation())
		return render(c)
	})

	v1.Post("/refresh", func(c *fiber.Ctx) error {
		s.Refresh(c.UserContext())
		return render(c)
	})

	v1.Post("/notice/dismiss", func(c *fiber.Ctx) error {
		s.DismissNotice()
		return render(c)
	})
}

// RegisterMetrics exposes the gatherer's metrics at /metrics.
func RegisterMetrics(app *fiber.App, g prometheus.Gatherer) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{})))
}

func bindBody(c *fiber.Ctx, v any) error {
	if err := c.BodyParser(v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// searchRequest is one keystroke of the search box.
type searchRequest struct {
	Text string `json:"text" validate:"max=100"`
}

// selectRequest is a search result picked by the user.
type selectRequest struct {
	ID      string   `json:"id"`
	Name    string   `json:"name" validate:"required,max=100"`
	Region  string   `json:"region"`
	Country string   `json:"country" validate:"max=100"`
	Lat     *float64 `json:"lat" validate:"required_with=Lon,omitempty,latitude"`
	Lon     *float64 `json:"lon" validate:"required_with=Lat,omitempty,longitude"`
}

func (r selectRequest) toLocation() weather.Location {
	return weather.Location{
		ID:      r.ID,
		Name:    r.Name,
		Region:  r.Region,
		Country: r.Country,
		Lat:     r.Lat,
		Lon:     r.Lon,
	}
}
