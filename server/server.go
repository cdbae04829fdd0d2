// Package server exposes previews and renders over HTTP.
package server

import (
	"github.com/gin-gonic/gin"

	"github.com/ByLCY/lessonpress/artifact"
	"github.com/ByLCY/lessonpress/logger"
	rasterrenderer "github.com/ByLCY/lessonpress/renderer/raster"
)

type Options struct {
	MaxRequestBytes int64
	CORSOrigins     []string
	ThumbWidth      int
}

type Server struct {
	dispatcher *artifact.Dispatcher
	log        *logger.Logger
	opts       Options
}

// New builds a server around d. A nil logger discards output.
func New(d *artifact.Dispatcher, log *logger.Logger, opts Options) *Server {
	if log == nil {
		log = logger.Nop()
	}
	if opts.ThumbWidth <= 0 {
		opts.ThumbWidth = rasterrenderer.DefaultWidth
	}
	return &Server{dispatcher: d, log: log.With("component", "server"), opts: opts}
}

// Router wires middleware and routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(s.log))
	if len(s.opts.CORSOrigins) > 0 {
		r.Use(CORS(s.opts.CORSOrigins))
	}

	r.GET("/healthcheck", s.HealthCheck)

	v1 := r.Group("/v1")
	v1.Use(LimitBody(s.opts.MaxRequestBytes))
	{
		v1.GET("/formats", s.ListFormats)
		v1.POST("/preview/:format", s.Preview)
		v1.POST("/render/:format", s.Render)
		v1.POST("/thumbnail/:format", s.Thumbnail)
	}
	return r
}
