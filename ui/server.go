package ui

import (
	"net/http"
	"strconv"

	"sheetlens/domain/core"
	"sheetlens/domain/dataset"
	"sheetlens/internal"
	"sheetlens/internal/analysis"
	"sheetlens/internal/errors"
	"sheetlens/internal/session"
	"sheetlens/ui/middleware"

	"github.com/gin-gonic/gin"
)

// Options holds host limits shared by the JSON server and the HTML app
type Options struct {
	MaxUploadBytes int64
	PreviewRows    int
}

// DefaultOptions returns the limits used when none are configured
func DefaultOptions() Options {
	return Options{MaxUploadBytes: 50 * 1024 * 1024, PreviewRows: analysis.DefaultPreviewRows}
}

// Server is the JSON API over a workspace
type Server struct {
	router    *gin.Engine
	workspace *session.Workspace
	options   Options
	logger    *internal.Logger
}

// NewServer creates the API server. Call gin.SetMode before this to pick the mode.
func NewServer(workspace *session.Workspace, options Options) *Server {
	if options.PreviewRows <= 0 {
		options.PreviewRows = analysis.DefaultPreviewRows
	}

	s := &Server{
		router:    gin.New(),
		workspace: workspace,
		options:   options,
		logger:    internal.DefaultLogger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.AccessLog(s.logger))
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	{
		uploadLimit := s.options.MaxUploadBytes
		if uploadLimit > 0 {
			// room for every file of a full batch plus multipart framing
			uploadLimit = uploadLimit*int64(s.maxFiles()) + 1<<20
		}
		api.POST("/datasets", middleware.MaxBodyBytes(uploadLimit), s.handleUpload)
		api.GET("/datasets", s.handleListDatasets)
		api.GET("/datasets/:id", s.handleGetDataset)
		api.DELETE("/datasets/:id", s.handleRemoveDataset)
		api.GET("/datasets/:id/preview", s.handlePreview)
		api.GET("/datasets/:id/overview", s.handleOverview)
		api.GET("/datasets/:id/classification", s.handleClassification)
		api.GET("/datasets/:id/profile", s.handleProfile)
		api.POST("/datasets/:id/summary", s.handleSummary)

		api.GET("/relationships", s.handleListRelationships)
		api.POST("/relationships", s.handleAddRelationship)
	}
}

// Handler exposes the router for an http.Server
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	s.logger.Info("[Server] listening on %s", addr)
	return s.router.Run(addr)
}

func (s *Server) maxFiles() int {
	registry, _ := s.workspace.Snapshot()
	return registry.MaxFiles()
}

// respondError maps err to its code and HTTP status
func (s *Server) respondError(c *gin.Context, err error) {
	appErr := errors.FromDomain(err)
	status := errors.HTTPStatus(appErr.Code)
	switch {
	case status >= http.StatusInternalServerError:
		s.logger.Error("[Server] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	case core.IsIntakeError(err):
		s.logger.Warn("[Server] upload rejected: %v", err)
	case core.IsValidationError(err), core.IsNotFoundError(err):
		s.logger.Debug("[Server] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": appErr.Message, "code": appErr.Code})
}

func (s *Server) handleHealth(c *gin.Context) {
	registry, relationships := s.workspace.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"datasets":      registry.Len(),
		"max_files":     registry.MaxFiles(),
		"relationships": relationships.Len(),
	})
}

// datasetSummary is the list form of a dataset
type datasetSummary struct {
	*dataset.Dataset
	RowCount int `json:"row_count"`
}

func summarizeDatasets(list []*dataset.Dataset) []datasetSummary {
	out := make([]datasetSummary, 0, len(list))
	for _, ds := range list {
		out = append(out, datasetSummary{Dataset: ds, RowCount: ds.RowCount()})
	}
	return out
}

func (s *Server) handleUpload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		s.respondError(c, errors.InvalidInput("expected a multipart form with one or more files"))
		return
	}

	uploads, err := readUploads(form.File[uploadField], s.options.MaxUploadBytes)
	if err != nil {
		s.respondError(c, err)
		return
	}

	loaded, err := s.workspace.Upload(c.Request.Context(), uploads)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"datasets": summarizeDatasets(loaded)})
}

func (s *Server) handleListDatasets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"datasets": summarizeDatasets(s.workspace.Datasets())})
}

func (s *Server) handleGetDataset(c *gin.Context) {
	ds, err := s.workspace.Dataset(datasetID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"dataset":          datasetSummary{Dataset: ds, RowCount: ds.RowCount()},
		"groupable_fields": analysis.GroupableFields(ds),
	})
}

func (s *Server) handleRemoveDataset(c *gin.Context) {
	if err := s.workspace.Remove(datasetID(c)); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handlePreview(c *gin.Context) {
	n := s.options.PreviewRows
	if raw := c.Query("rows"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.respondError(c, errors.InvalidInput("rows must be a positive integer"))
			return
		}
		n = parsed
	}

	preview, err := s.workspace.Preview(datasetID(c), n)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"preview": preview, "caption": preview.Caption()})
}

func (s *Server) handleOverview(c *gin.Context) {
	overview, err := s.workspace.Overview(datasetID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (s *Server) handleClassification(c *gin.Context) {
	id := datasetID(c)
	classification, err := s.workspace.Classify(id)
	if err != nil {
		s.respondError(c, err)
		return
	}

	ds, err := s.workspace.Dataset(id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	operations := make(map[string][]dataset.Operation, len(ds.Columns))
	for _, col := range ds.Columns {
		operations[col] = analysis.OperationsFor(classification, col)
	}
	c.JSON(http.StatusOK, gin.H{"classification": classification, "operations": operations})
}

func (s *Server) handleProfile(c *gin.Context) {
	profiles, err := s.workspace.Profile(datasetID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"columns": profiles})
}

func (s *Server) handleSummary(c *gin.Context) {
	var form summaryForm
	if err := c.ShouldBindJSON(&form); err != nil {
		s.respondError(c, errors.InvalidInput("invalid summary request body"))
		return
	}

	req, err := form.toRequest(datasetID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}

	rows, err := s.workspace.Summarize(req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"request": req, "rows": rows})
}

func (s *Server) handleListRelationships(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"relationships": s.workspace.Relationships()})
}

func (s *Server) handleAddRelationship(c *gin.Context) {
	var form relationshipForm
	if err := c.ShouldBindJSON(&form); err != nil {
		s.respondError(c, errors.InvalidInput("invalid relationship body"))
		return
	}

	list, err := s.workspace.AddRelationship(form.toRelationship())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"relationships": list})
}

func datasetID(c *gin.Context) core.ID {
	return core.ID(c.Param("id"))
}
