package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prashantgupta17/evaltemplates/dataset"
	"github.com/prashantgupta17/evaltemplates/evals"
	"github.com/prashantgupta17/evaltemplates/templates"
	"go.uber.org/zap"
)

type templateInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Variables   []string `json:"variables"`
	Rails       []string `json:"rails"`
	Template    string   `json:"template,omitempty"`
}

type templateRequest struct {
	Template     string           `json:"template"`
	TemplateName string           `json:"template_name"`
	Records      []map[string]any `json:"records" binding:"required"`
}

type formatRequest struct {
	templateRequest
}

type classifyRequest struct {
	templateRequest
	Rails              []string `json:"rails"`
	SystemInstruction  string   `json:"system_instruction"`
	ProvideExplanation bool     `json:"provide_explanation"`
}

type generateRequest struct {
	templateRequest
	SystemInstruction string `json:"system_instruction"`
}

type relevanceRequest struct {
	Records         []map[string]any `json:"records" binding:"required"`
	QueryColumn     string           `json:"query_column"`
	DocumentsColumn string           `json:"documents_column"`
}

type classificationResult struct {
	Label       string `json:"label"`
	Explanation string `json:"explanation,omitempty"`
	Error       string `json:"error,omitempty"`
}

var errNoTemplate = errors.New("one of 'template' or 'template_name' is required")

func infoOf(t templates.EvalTemplate, withText bool) templateInfo {
	info := templateInfo{
		Name:        t.Name,
		Description: t.Description,
		Variables:   t.Template.Variables(),
		Rails:       t.Rails.Rails(),
	}
	if withText {
		info.Template = t.Template.Text()
	}
	return info
}

func (s *EvalServer) handleListTemplates(c *gin.Context) {
	infos := make([]templateInfo, 0)
	for _, name := range s.registry.List() {
		t, err := s.registry.Get(name)
		if err != nil {
			continue
		}
		infos = append(infos, infoOf(t, false))
	}
	c.JSON(http.StatusOK, gin.H{"templates": infos})
}

func (s *EvalServer) handleGetTemplate(c *gin.Context) {
	t, err := s.registry.Get(c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, infoOf(t, true))
}

func (s *EvalServer) handleFormat(c *gin.Context) {
	var req formatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tmpl, _, err := s.resolveTemplate(req.templateRequest)
	if err != nil {
		writeError(c, err)
		return
	}

	prompts, err := templates.MapTemplate(toDataset(req.Records), tmpl)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prompts": prompts})
}

func (s *EvalServer) handleClassify(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tmpl, rails, err := s.resolveTemplate(req.templateRequest)
	if err != nil {
		writeError(c, err)
		return
	}
	if len(req.Rails) > 0 {
		rails = req.Rails
	}

	runID := uuid.NewString()
	opts := append(s.runOptions(runID),
		evals.WithExplanation(req.ProvideExplanation),
		evals.WithSystemInstruction(req.SystemInstruction))

	results, err := evals.Classify(c.Request.Context(), s.model, toDataset(req.Records), tmpl, rails, opts...)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]classificationResult, len(results))
	for i, r := range results {
		out[i] = classificationResult{Label: r.Label, Explanation: r.Explanation}
		if r.Err != nil {
			out[i].Error = r.Err.Error()
		}
	}
	c.JSON(http.StatusOK, gin.H{"run_id": runID, "model": s.model.Name(), "results": out})
}

func (s *EvalServer) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tmpl, _, err := s.resolveTemplate(req.templateRequest)
	if err != nil {
		writeError(c, err)
		return
	}

	runID := uuid.NewString()
	opts := append(s.runOptions(runID), evals.WithSystemInstruction(req.SystemInstruction))
	outputs, err := evals.Generate(c.Request.Context(), s.model, toDataset(req.Records), tmpl, opts...)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"run_id": runID, "model": s.model.Name(), "outputs": outputs})
}

func (s *EvalServer) handleRelevance(c *gin.Context) {
	var req relevanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	runID := uuid.NewString()
	opts := s.runOptions(runID)
	if req.QueryColumn != "" {
		opts = append(opts, evals.WithQueryColumn(req.QueryColumn))
	}
	if req.DocumentsColumn != "" {
		opts = append(opts, evals.WithDocumentsColumn(req.DocumentsColumn))
	}

	relevance, err := evals.RunRelevanceEval(c.Request.Context(), s.model, toDataset(req.Records), opts...)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"run_id": runID, "model": s.model.Name(), "relevance": relevance})
}

// runOptions tags the run's log lines with its id. Per-record failures are reported, not fatal.
func (s *EvalServer) runOptions(runID string) []evals.Option {
	opts := append([]evals.Option(nil), s.evalOptions...)
	return append(opts,
		evals.WithLogger(s.logger.With(zap.String("run_id", runID))),
		evals.WithContinueOnError(true))
}

func (s *EvalServer) resolveTemplate(req templateRequest) (*templates.PromptTemplate, []string, error) {
	if req.TemplateName != "" {
		t, err := s.registry.Get(req.TemplateName)
		if err != nil {
			return nil, nil, err
		}
		return t.Template, t.Rails.Rails(), nil
	}
	if req.Template == "" {
		return nil, nil, errNoTemplate
	}
	return templates.NewPromptTemplate(req.Template), nil, nil
}

func toDataset(records []map[string]any) *dataset.Dataset {
	rs := make([]dataset.Record, len(records))
	for i, r := range records {
		rs[i] = dataset.Record(r)
	}
	return dataset.New(rs...)
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, templates.ErrTemplateNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errNoTemplate),
		errors.Is(err, templates.ErrMissingVariable),
		errors.Is(err, templates.ErrInvalidTemplate),
		errors.Is(err, evals.ErrNoRails):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
