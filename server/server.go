package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prashantgupta17/evaltemplates/evals"
	"github.com/prashantgupta17/evaltemplates/llm"
	"github.com/prashantgupta17/evaltemplates/templates"
	"go.uber.org/zap"
)

type EvalServer struct {
	model       llm.Model
	registry    *templates.Registry
	evalOptions []evals.Option
	logger      *zap.Logger
}

func NewEvalServer(model llm.Model, registry *templates.Registry, logger *zap.Logger, evalOptions ...evals.Option) *EvalServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if registry == nil {
		registry = templates.NewRegistry()
	}
	return &EvalServer{
		model:       model,
		registry:    registry,
		evalOptions: append(evalOptions, evals.WithLogger(logger)),
		logger:      logger,
	}
}

// Router builds the HTTP routes.
func (s *EvalServer) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	v1 := r.Group("/v1")
	v1.GET("/templates", s.handleListTemplates)
	v1.GET("/templates/:name", s.handleGetTemplate)
	v1.POST("/format", s.handleFormat)
	v1.POST("/classify", s.handleClassify)
	v1.POST("/generate", s.handleGenerate)
	v1.POST("/relevance", s.handleRelevance)
	return r
}

func (s *EvalServer) Start(port string) error {
	s.logger.Info("starting server", zap.String("port", port), zap.String("model", s.model.Name()))
	return s.Router().Run(":" + port)
}

func (s *EvalServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)))
	}
}
