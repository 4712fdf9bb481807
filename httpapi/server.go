package httpapi

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/parser"
	"github.com/AntonStoeckl/library-circulation-go/report"
)

const (
	logMsgRequestFailed = "http request failed"
	logAttrPath         = "path"
	logAttrError        = "error"
)

// Submitter applies an operation in order with all others. circulation.Sequencer implements it.
type Submitter interface {
	Submit(ctx context.Context, op circulation.Operation) (circulation.Result, error)
}

// Logger interface for request failure logging.
type Logger interface {
	Error(msg string, args ...any)
}

// OperationResponse is the JSON body returned for every operation.
type OperationResponse struct {
	OperationType string `json:"operation_type"`
	Outcome       string `json:"outcome"`
	Error         string `json:"error,omitempty"`
	Report        string `json:"report"`
}

// RecordResponse is the JSON form of a circulation.RecordSnapshot.
type RecordResponse struct {
	RecordID     int    `json:"record_id"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	Availability string `json:"availability"`
	BorrowedBy   *int   `json:"borrowed_by"`
	Reservations []int  `json:"reservations"`
}

type recordsResponse struct {
	OperationResponse
	Records []RecordResponse `json:"records"`
}

type nearestResponse struct {
	OperationResponse
	Records      []RecordResponse `json:"records"`
	IndexNearest *int             `json:"index_nearest"`
}

type flipCountResponse struct {
	OperationResponse
	FlipCount int `json:"flip_count"`
}

// Option defines a functional option for NewApp.
type Option func(*server)

// WithLogger sets the logger for failed requests.
func WithLogger(logger Logger) Option {
	return func(s *server) {
		s.logger = logger
	}
}

type server struct {
	submitter Submitter
	logger    Logger
}

// NewApp builds the fiber app serving submitter.
func NewApp(submitter Submitter, options ...Option) *fiber.App {
	s := &server{submitter: submitter}
	for _, option := range options {
		option(s)
	}

	app := fiber.New(fiber.Config{
		AppName:               "circulation",
		DisableStartupMessage: true,
		JSONEncoder:           jsoniter.ConfigFastest.Marshal,
		JSONDecoder:           jsoniter.ConfigFastest.Unmarshal,
		ErrorHandler:          s.handleError,
	})

	s.setupRoutes(app)

	return app
}

func (s *server) setupRoutes(router fiber.Router) {
	router.Post("/operations", s.postOperation)
	router.Get("/records", s.getRecords)
	router.Get("/records/:id", s.getRecord)
	router.Get("/records/:id/nearest", s.getNearest)
	router.Get("/flip-count", s.getFlipCount)
}

func (s *server) postOperation(c *fiber.Ctx) error {
	line := strings.TrimSpace(string(c.Body()))

	op, err := parser.Parse(line)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(OperationResponse{
			Outcome: "malformed",
			Error:   err.Error(),
			Report:  report.FormatMalformed(line),
		})
	}

	result, err := s.submitter.Submit(c.UserContext(), op)
	if err != nil {
		return err
	}

	return c.JSON(operationResponseOf(result))
}

func (s *server) getRecord(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "record id must be an integer")
	}

	result, err := s.submitter.Submit(c.UserContext(), circulation.Inspect{RecordID: id})
	if err != nil {
		return err
	}

	inspected, ok := result.(circulation.InspectResult)
	if !ok {
		return fiber.ErrInternalServerError
	}

	body := recordsResponse{OperationResponse: operationResponseOf(result), Records: []RecordResponse{}}
	if inspected.Outcome() == circulation.OutcomeNotFound {
		return c.Status(fiber.StatusNotFound).JSON(body)
	}

	body.Records = append(body.Records, recordResponseOf(inspected.Snapshot))

	return c.JSON(body)
}

func (s *server) getRecords(c *fiber.Ctx) error {
	from, errFrom := queryInt(c, "from")
	to, errTo := queryInt(c, "to")
	if errFrom != nil || errTo != nil {
		return fiber.NewError(fiber.StatusBadRequest, "from and to must be integers")
	}

	result, err := s.submitter.Submit(c.UserContext(), circulation.InspectRange{From: from, To: to})
	if err != nil {
		return err
	}

	listed, ok := result.(circulation.InspectRangeResult)
	if !ok {
		return fiber.ErrInternalServerError
	}

	return c.JSON(recordsResponse{
		OperationResponse: operationResponseOf(result),
		Records:           recordResponsesOf(listed.Snapshots),
	})
}

func (s *server) getNearest(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "record id must be an integer")
	}

	result, err := s.submitter.Submit(c.UserContext(), circulation.NearestMatch{RecordID: id})
	if err != nil {
		return err
	}

	nearest, ok := result.(circulation.NearestMatchResult)
	if !ok {
		return fiber.ErrInternalServerError
	}

	body := nearestResponse{
		OperationResponse: operationResponseOf(result),
		Records:           recordResponsesOf(nearest.Matches),
	}
	if nearest.HasIndexNearest {
		body.IndexNearest = &nearest.IndexNearest
	}

	if nearest.Outcome() == circulation.OutcomeNotFound {
		return c.Status(fiber.StatusNotFound).JSON(body)
	}

	return c.JSON(body)
}

func (s *server) getFlipCount(c *fiber.Ctx) error {
	result, err := s.submitter.Submit(c.UserContext(), circulation.FlipCountQuery{})
	if err != nil {
		return err
	}

	counted, ok := result.(circulation.FlipCountResult)
	if !ok {
		return fiber.ErrInternalServerError
	}

	return c.JSON(flipCountResponse{OperationResponse: operationResponseOf(result), FlipCount: counted.Count})
}

func (s *server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
	case errors.Is(err, circulation.ErrSequencerStopped):
		code = fiber.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		code = fiber.StatusServiceUnavailable
	}

	if s.logger != nil && code >= fiber.StatusInternalServerError {
		s.logger.Error(logMsgRequestFailed, logAttrPath, c.Path(), logAttrError, err.Error())
	}

	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func queryInt(c *fiber.Ctx, key string) (int, error) {
	return strconv.Atoi(c.Query(key))
}

func operationResponseOf(result circulation.Result) OperationResponse {
	resp := OperationResponse{
		OperationType: result.OperationType(),
		Outcome:       string(result.Outcome()),
		Report:        report.Format(result),
	}

	if err := result.Err(); err != nil {
		resp.Error = err.Error()
	}

	return resp
}

func recordResponseOf(s circulation.RecordSnapshot) RecordResponse {
	resp := RecordResponse{
		RecordID:     s.RecordID,
		Title:        s.Title,
		Author:       s.Author,
		Availability: report.Availability(s.ReportedAvailable),
		Reservations: s.WaitingPatrons,
	}

	if resp.Reservations == nil {
		resp.Reservations = []int{}
	}

	if s.HasHolder {
		holder := s.HolderID
		resp.BorrowedBy = &holder
	}

	return resp
}

func recordResponsesOf(snapshots []circulation.RecordSnapshot) []RecordResponse {
	out := make([]RecordResponse, 0, len(snapshots))
	for _, s := range snapshots {
		out = append(out, recordResponseOf(s))
	}

	return out
}
