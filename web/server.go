// Package web serves a localhost-only single-user JSON API over the
// normalization pipeline; it intentionally has no auth/CSRF protection in
// this mode.
package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"azai/billing"
	"azai/clock"
	"azai/confidence"
	"azai/config"
	"azai/importer"
	"azai/pipeline"
	"azai/storage"
)

const maxBodySize = "10M"

type Server struct {
	store     *storage.SQLiteStore
	processor *pipeline.Processor
	reader    *importer.JSONReader
	rules     billing.Rules
	logger    zerolog.Logger
	echo      *echo.Echo
}

type normalizeResponse struct {
	Documents int               `json:"documents"`
	Persisted int               `json:"persisted"`
	Results   []pipeline.Result `json:"results"`
}

type unitsRequest struct {
	TimeIn  string `json:"time_in"`
	TimeOut string `json:"time_out"`
}

type unitsResponse struct {
	TimeIn      string `json:"time_in"`
	TimeOut     string `json:"time_out"`
	Minutes     int    `json:"minutes"`
	Units       int    `json:"units"`
	HoursWorked string `json:"hours_worked"`
}

type deleteResponse struct {
	Deleted bool `json:"deleted"`
}

// NewServer wires the API routes. Processing settings come from cfg.
func NewServer(store *storage.SQLiteStore, cfg config.Config, logger zerolog.Logger) (http.Handler, error) {
	reader, err := importer.NewJSONReader()
	if err != nil {
		return nil, fmt.Errorf("create json reader: %w", err)
	}

	server := &Server{
		store:     store,
		processor: pipeline.NewProcessor(cfg.PipelineOptions(logger)),
		reader:    reader,
		rules:     cfg.BillingRules(),
		logger:    logger,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(recovery(logger))
	e.Use(requestLogger(logger))
	e.Use(middleware.BodyLimit(maxBodySize))

	api := e.Group("/api")
	api.POST("/normalize", server.handleNormalize)
	api.POST("/units", server.handleUnits)
	api.GET("/timesheets", server.handleListTimesheets)
	api.GET("/timesheets/:id", server.handleGetTimesheet)
	api.DELETE("/timesheets/:id", server.handleDeleteTimesheet)
	server.echo = e

	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *Server) handleNormalize(c echo.Context) error {
	persist := false
	if raw := strings.TrimSpace(c.QueryParam("persist")); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid persist flag (expected true or false)")
		}
		persist = value
	}

	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("read request body: %v", err))
	}

	// Documents without an id get one derived from the body, so posting
	// the same payload twice upserts instead of duplicating.
	source := "api:" + uuid.NewSHA1(uuid.NameSpaceOID, payload).String()
	documents, err := s.reader.Decode(payload, source)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	for i := range documents {
		if documents[i].ID == "" {
			documents[i].ID = importer.DocumentID(source, i)
		}
	}

	results, err := s.processor.ProcessBatch(c.Request().Context(), documents)
	if err != nil {
		return fmt.Errorf("process documents: %w", err)
	}

	resp := normalizeResponse{Documents: len(results), Results: results}
	if persist {
		records := make([]storage.Timesheet, 0, len(results))
		for _, result := range results {
			records = append(records, storage.FromResult(result))
		}
		saved, err := s.store.SaveTimesheets(records)
		if err != nil {
			return fmt.Errorf("persist timesheets: %w", err)
		}
		resp.Persisted = saved
	}

	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleUnits(c echo.Context) error {
	var body unitsRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid json payload")
	}

	timeIn, ok := clock.Parse(body.TimeIn)
	if !ok {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, fmt.Sprintf("invalid time_in %q", body.TimeIn))
	}
	timeOut, ok := clock.Parse(body.TimeOut)
	if !ok {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, fmt.Sprintf("invalid time_out %q", body.TimeOut))
	}

	minutes := clock.Elapsed(timeIn, timeOut)
	return c.JSON(http.StatusOK, unitsResponse{
		TimeIn:      timeIn.String(),
		TimeOut:     timeOut.String(),
		Minutes:     minutes,
		Units:       s.rules.Units(minutes),
		HoursWorked: billing.FormatHours(minutes),
	})
}

func (s *Server) handleListTimesheets(c echo.Context) error {
	var recommendation confidence.Recommendation
	if raw := strings.TrimSpace(c.QueryParam("recommendation")); raw != "" {
		parsed, ok := confidence.ParseRecommendation(raw)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown recommendation %q", raw))
		}
		recommendation = parsed
	}

	records, err := s.store.ListTimesheets(recommendation)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

func (s *Server) handleGetTimesheet(c echo.Context) error {
	record, err := s.store.GetTimesheet(c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrTimesheetNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "timesheet not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, record)
}

func (s *Server) handleDeleteTimesheet(c echo.Context) error {
	deleted, err := s.store.DeleteTimesheet(c.Param("id"))
	if err != nil {
		return err
	}
	if !deleted {
		return echo.NewHTTPError(http.StatusNotFound, "timesheet not found")
	}
	return c.JSON(http.StatusOK, deleteResponse{Deleted: true})
}
