package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rezonia/mydata-validator/internal/diff"
	"github.com/rezonia/mydata-validator/internal/processor"
)

// maxBodySize caps uploads at 10 MiB
const maxBodySize = 10 << 20

var (
	errEmptyBody    = errors.New("empty request body")
	errBodyTooLarge = errors.New("failed to read request body")
)

// Config holds server configuration
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server represents the HTTP API server
type Server struct {
	config   *Config
	router   *gin.Engine
	pipeline *processor.Pipeline
}

// NewServer creates a new API server around the given pipeline
func NewServer(config *Config, pipeline *processor.Pipeline) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	if pipeline == nil {
		pipeline = processor.NewPipeline()
	}

	s := &Server{
		config:   config,
		router:   router,
		pipeline: pipeline,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/validate", s.handleValidate)
		v1.POST("/validate/batch", s.handleValidateBatch)
		v1.POST("/diff", s.handleDiff)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleValidate(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	result, err := s.pipeline.ProcessXML(ctx, body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "failed to parse document",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ValidateResponse{
		DocumentHash: result.Hash,
		Invoices:     result.Invoices,
	})
}

func (s *Server) handleValidateBatch(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "expected multipart form"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no files uploaded"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Minute)
	defer cancel()

	results := make([]BatchFileResult, 0, len(files))
	for _, fh := range files {
		results = append(results, s.processBatchFile(ctx, fh.Filename, func() ([]byte, error) {
			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			defer f.Close()
			return io.ReadAll(io.LimitReader(f, maxBodySize))
		}))
	}

	c.JSON(http.StatusOK, BatchResponse{Files: results})
}

func (s *Server) processBatchFile(ctx context.Context, name string, read func() ([]byte, error)) BatchFileResult {
	content, err := read()
	if err != nil {
		return BatchFileResult{Filename: name, Status: "failed", ErrorMessage: "failed to read file"}
	}

	result, err := s.pipeline.ProcessXML(ctx, content)
	if err != nil {
		return BatchFileResult{Filename: name, Status: "failed", ErrorMessage: err.Error()}
	}

	return BatchFileResult{Filename: name, Status: "processed", Invoices: result.Invoices}
}

func (s *Server) handleDiff(c *gin.Context) {
	var req DiffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}
	if req.Old == nil || req.New == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "both old and new invoices are required"})
		return
	}

	c.JSON(http.StatusOK, DiffResponse{Diff: diff.Compare(req.Old, req.New)})
}

func readBody(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, errBodyTooLarge
	}
	if len(body) == 0 {
		return nil, errEmptyBody
	}
	return body, nil
}
