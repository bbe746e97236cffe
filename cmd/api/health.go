package main

import (
	"context"
	"net/http"
	"time"
)

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

type pinger interface {
	Ping(ctx context.Context) error
}

// healthcheckHandler godoc
//
//	@Summary		Healthcheck
//	@Description	Healthcheck endpoint
//	@Tags			ops
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Failure		503	{object}	HealthResponse
//	@Router			/health [get]
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Services: map[string]string{
			"database": "memory",
			"queue":    "memory",
		},
	}

	if app.storage != nil {
		response.Services["database"] = status(app.storage.Ping(ctx))
	}

	// only the RabbitMQ broker can be pinged
	if p, ok := app.broker.(pinger); ok {
		response.Services["queue"] = status(p.Ping(ctx))
	}

	if app.redis != nil {
		response.Services["cache"] = status(app.redis.Ping(ctx).Err())
	}

	// if any service is down, mark as unhealthy
	for _, s := range response.Services {
		if s == "error" {
			response.Status = "unhealthy"
		}
	}

	code := http.StatusOK
	if response.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	if err := writeJson(w, code, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
