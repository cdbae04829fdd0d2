package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ByLCY/lessonpress/artifact"
	"github.com/ByLCY/lessonpress/binding"
	"github.com/ByLCY/lessonpress/content"
	"github.com/ByLCY/lessonpress/preview"
	"github.com/ByLCY/lessonpress/renderer"
	rasterrenderer "github.com/ByLCY/lessonpress/renderer/raster"
)

// RenderRequest is the body of preview, render and thumbnail calls. Content carries the model for
// the path format; Data, when present, fills ${path} placeholders in content strings.
type RenderRequest struct {
	Title   string          `json:"title"`
	Content json.RawMessage `json:"content"`
	Data    any             `json:"data,omitempty"`
}

func (s *Server) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (s *Server) ListFormats(c *gin.Context) {
	RespondOK(c, gin.H{"formats": artifact.Formats()})
}

func (s *Server) Preview(c *gin.Context) {
	format, _, model, err := s.decode(c)
	if err != nil {
		respondFailure(c, err)
		return
	}
	RespondOK(c, preview.Build(format, model))
}

func (s *Server) Render(c *gin.Context) {
	format, req, model, err := s.decode(c)
	if err != nil {
		respondFailure(c, err)
		return
	}
	arts, err := s.dispatcher.Render(c.Request.Context(), format, req.Title, model)
	if err != nil {
		respondFailure(c, err)
		return
	}
	if len(arts) == 1 {
		a := arts[0]
		attachment(c, a.FileName())
		c.Header("X-Page-Count", strconv.Itoa(a.Pages))
		c.Data(http.StatusOK, a.ContentType, a.Data)
		return
	}
	data, err := artifact.Archive(arts)
	if err != nil {
		respondFailure(c, err)
		return
	}
	attachment(c, arts[0].Name+".zip")
	c.Data(http.StatusOK, "application/zip", data)
}

// Thumbnail renders one page (query "page", default 1) of the primary artifact as PNG; query
// "width" overrides the configured width.
func (s *Server) Thumbnail(c *gin.Context) {
	format, req, model, err := s.decode(c)
	if err != nil {
		respondFailure(c, err)
		return
	}
	opts := rasterrenderer.Options{Width: s.opts.ThumbWidth, Page: 1}
	if v := c.Query("width"); v != "" {
		if opts.Width, err = strconv.Atoi(v); err != nil || opts.Width <= 0 || opts.Width > 4096 {
			respondFailure(c, badRequest{fmt.Errorf("invalid width %q", v)})
			return
		}
	}
	if v := c.Query("page"); v != "" {
		if opts.Page, err = strconv.Atoi(v); err != nil || opts.Page <= 0 {
			respondFailure(c, badRequest{fmt.Errorf("invalid page %q", v)})
			return
		}
	}
	result, err := s.dispatcher.Layout(format, req.Title, model)
	if err != nil {
		respondFailure(c, err)
		return
	}
	if opts.Page > len(result.Pages) {
		respondFailure(c, badRequest{fmt.Errorf("page %d out of range (%d pages)", opts.Page, len(result.Pages))})
		return
	}
	png, err := rasterrenderer.NewRenderer(opts).Render(result)
	if err != nil {
		respondFailure(c, err)
		return
	}
	c.Data(http.StatusOK, renderer.ContentTypePNG, png)
}

// decode resolves the path format and decodes, normalises and binds the body content.
func (s *Server) decode(c *gin.Context) (content.Format, RenderRequest, content.Model, error) {
	var req RenderRequest
	format, err := content.ResolveFormat(c.Param("format"))
	if err != nil {
		return "", req, nil, err
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", req, nil, badRequest{fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)}
		}
		return "", req, nil, badRequest{fmt.Errorf("read body: %w", err)}
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return "", req, nil, badRequest{fmt.Errorf("decode request: %w", err)}
	}
	if len(req.Content) == 0 {
		return "", req, nil, badRequest{errors.New("missing content")}
	}
	model, err := content.Decode(format, req.Content)
	if err != nil {
		return "", req, nil, badRequest{err}
	}
	if req.Data != nil {
		content.Bind(model, req.Data)
		req.Title = binding.Interpolate(req.Title, req.Data)
	}
	return format, req, model, nil
}

func attachment(c *gin.Context, filename string) {
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
}
