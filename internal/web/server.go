// Package web serves the task list as a single-page web UI, a small JSON
// API and a server-sent event stream of changes.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"todo/internal/output"
	"todo/internal/service"
	"todo/internal/tasklist"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	// DefaultAddr is the listen address used by `todo serve`.
	DefaultAddr = "127.0.0.1:8080"

	shutdownTimeout = 5 * time.Second
)

// Server is the HTTP presentation layer over a service.Service.
type Server struct {
	svc    service.Service
	log    *slog.Logger
	engine *gin.Engine
}

// pageData is rendered by index.html.
type pageData struct {
	Tasks       []tasklist.Task
	Placeholder string

	// Form contents, kept when the add form is rejected.
	Description string
	Deadline    string

	// Alert is shown in a blocking alert() when set.
	Alert string
}

// addRequest is the JSON body of POST /api/tasks.
type addRequest struct {
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
}

// New creates a server. The gin mode is left to the caller.
func New(svc service.Service, log *slog.Logger) *Server {
	s := &Server{svc: svc, log: log}

	tmpl := template.Must(template.ParseFS(templateFS, "templates/*.html"))

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.SetHTMLTemplate(tmpl)

	r.GET("/", s.index)
	r.POST("/tasks", s.addForm)
	r.POST("/tasks/:id/toggle", s.toggleForm)
	r.POST("/tasks/:id/delete", s.deleteForm)

	api := r.Group("/api")
	api.GET("/tasks", s.listTasks)
	api.POST("/tasks", s.addTask)
	api.PATCH("/tasks/:id/toggle", s.toggleTask)
	api.DELETE("/tasks/:id", s.deleteTask)

	r.GET("/events", s.events)

	s.engine = r
	return s
}

// Handler returns the server's http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
// Request contexts derive from ctx so open event streams end with it.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) render(c *gin.Context, status int, data pageData) {
	data.Tasks = s.svc.Tasks()
	data.Placeholder = output.EmptyPlaceholder
	c.HTML(status, "index.html", data)
}

func (s *Server) index(c *gin.Context) {
	s.render(c, http.StatusOK, pageData{})
}

func (s *Server) addForm(c *gin.Context) {
	description := c.PostForm("description")
	deadline := c.PostForm("deadline")

	_, err := s.svc.AddTask(c.Request.Context(), description, deadline)
	var verr *tasklist.ValidationError
	switch {
	case errors.As(err, &verr):
		s.render(c, http.StatusUnprocessableEntity, pageData{
			Description: description,
			Deadline:    deadline,
			Alert:       verr.Message,
		})
		return
	case err != nil:
		s.storeFailure(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) toggleForm(c *gin.Context) {
	if err := s.svc.ToggleComplete(c.Request.Context(), c.Param("id")); err != nil {
		s.storeFailure(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) deleteForm(c *gin.Context) {
	if err := s.svc.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		s.storeFailure(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) listTasks(c *gin.Context) {
	c.JSON(http.StatusOK, s.svc.Tasks())
}

func (s *Server) addTask(c *gin.Context) {
	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	task, err := s.svc.AddTask(c.Request.Context(), req.Description, req.Deadline)
	var verr *tasklist.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Message, "field": verr.Field})
		return
	case err != nil:
		s.storeFailure(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (s *Server) toggleTask(c *gin.Context) {
	if err := s.svc.ToggleComplete(c.Request.Context(), c.Param("id")); err != nil {
		s.storeFailure(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteTask(c *gin.Context) {
	if err := s.svc.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		s.storeFailure(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) storeFailure(c *gin.Context, err error) {
	s.log.Error("store error", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save tasks"})
}
