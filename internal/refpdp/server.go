package refpdp

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// Server is the HTTP front-end for an Engine: it exposes the
// single-decision and batch endpoints the bridge's pdpclient POSTs to,
// plus a bundle-management route used by the BDD scenarios to swap
// policies at runtime.
type Server struct {
	Router *gin.Engine
	engine *Engine
}

// NewServer builds a Server wrapping engine. singlePath and batchPath
// are the routes the single-decision and batch-decision endpoints are
// mounted at (e.g. "/v1/decision" and "/v1/filter").
func NewServer(engine *Engine, singlePath, batchPath string) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{Router: router, engine: engine}
	router.POST(singlePath, s.handleDecision)
	router.POST(batchPath, s.handleFilter)
	router.GET("/v1/bundle", s.handleGetBundle)
	router.PUT("/v1/bundle", s.handlePutBundle)
	return s
}

func (s *Server) handleDecision(c *gin.Context) {
	var input map[string]any
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	allowed, err := s.engine.Decide(c.Request.Context(), input)
	if err != nil {
		log.Error("decision evaluation failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": allowed})
}

func (s *Server) handleFilter(c *gin.Context) {
	var input map[string]any
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	indices, err := s.engine.Filter(c.Request.Context(), input)
	if err != nil {
		log.Error("filter evaluation failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": indices})
}

func (s *Server) handleGetBundle(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.Bundle())
}

func (s *Server) handlePutBundle(c *gin.Context) {
	var bundle PolicyBundle
	if err := c.ShouldBindJSON(&bundle); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.engine.ReplaceBundle(c.Request.Context(), bundle); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
