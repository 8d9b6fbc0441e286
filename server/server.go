// Package server exposes a session over HTTP so the widget can be driven
// from a browser or a script.
package server

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"weatheros/clock"
	"weatheros/manager"
	"weatheros/view"
	"weatheros/weathercode"
)

type stateResponse struct {
	manager.State
	Condition string   `json:"condition,omitempty"`
	Frame     []string `json:"frame"`
}

type searchRequest struct {
	Query string `json:"query"`
}

func newStateResponse(st manager.State) stateResponse {
	resp := stateResponse{
		State: st,
		Frame: view.Render(st, clock.Format(time.Now())).Lines(),
	}
	if st.Snapshot != nil {
		resp.Condition = weathercode.Code(st.Snapshot.ConditionCode).String()
	}
	return resp
}

// RegisterRoutes wires the HTTP handlers into the Fiber app. gatherer may
// be nil to leave out /metrics.
func RegisterRoutes(app *fiber.App, session *manager.Session, gatherer prometheus.Gatherer) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	if gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	api.Get("/state", func(c *fiber.Ctx) error {
		return c.JSON(newStateResponse(session.State()))
	})

	api.Post("/search", func(c *fiber.Ctx) error {
		var req searchRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
			}
		}
		if strings.TrimSpace(req.Query) == "" {
			req.Query = c.Query("q")
		}

		st, err := session.Submit(c.UserContext(), req.Query)
		if errors.Is(err, manager.ErrEmptyQuery) {
			return fiber.NewError(fiber.StatusBadRequest, "query must not be empty")
		}
		if err != nil {
			return err
		}
		return c.JSON(newStateResponse(st))
	})

	api.Post("/locate", func(c *fiber.Ctx) error {
		st, err := session.Locate(c.UserContext())
		if errors.Is(err, manager.ErrCapabilityUnavailable) {
			return fiber.NewError(fiber.StatusNotImplemented, err.Error())
		}
		if err != nil {
			return err
		}
		return c.JSON(newStateResponse(st))
	})
}
