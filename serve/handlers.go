package serve

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/finsight-ai/finrag/graphrag"
	"github.com/finsight-ai/finrag/pipeline"
)

// HistoryTurn is one prior exchange sent by the frontend.
type HistoryTurn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ChatRequest is the POST /api/chat body.
type ChatRequest struct {
	Question    string        `json:"question" binding:"required"`
	ChatHistory []HistoryTurn `json:"chat_history"`
}

// ChatResponse is the POST /api/chat reply. Answer is always present on
// 200. ChartImage is base64-encoded PNG, set only when a chart was
// rendered. Error carries designed chart failures alongside the answer;
// on 4xx/5xx it is the only populated field.
type ChatResponse struct {
	Answer     string `json:"answer"`
	ChartImage string `json:"chart_image,omitempty"`
	ChartType  string `json:"chart_type,omitempty"`
	Error      string `json:"error,omitempty"`
}

func (s *Server) handleChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.countRequest(c, "bad_request")
		c.JSON(http.StatusBadRequest, ChatResponse{Error: err.Error()})
		return
	}

	history := make([]pipeline.Turn, 0, len(req.ChatHistory))
	for _, turn := range req.ChatHistory {
		history = append(history, pipeline.Turn{Question: turn.Question, Answer: turn.Answer})
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.config.RequestTimeout)
	defer cancel()

	outcome, err := s.asker.Ask(ctx, req.Question, history)
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyQuestion) {
			s.countRequest(c, "bad_request")
			c.JSON(http.StatusBadRequest, ChatResponse{Error: "question is required"})
			return
		}
		s.logger.Error("chat request failed", "error", err,
			"evidence_unavailable", errors.Is(err, graphrag.ErrEvidenceUnavailable))
		s.countRequest(c, "error")
		c.JSON(http.StatusBadGateway, ChatResponse{Error: "the answer service is temporarily unavailable"})
		return
	}

	resp := ChatResponse{
		Answer: outcome.Answer,
		Error:  outcome.ChartError,
	}
	if outcome.HasChart() {
		resp.ChartImage = base64.StdEncoding.EncodeToString(outcome.ChartPNG)
		resp.ChartType = outcome.Chart.ChartType.String()
	}
	s.countRequest(c, string(outcome.Status))
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) countRequest(c *gin.Context, status string) {
	s.requests.Add(c.Request.Context(), 1,
		metric.WithAttributes(attribute.String("status", status)))
}
