package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"schemaforge/internal/generator"
	"schemaforge/internal/parser"
	"schemaforge/internal/schema"
	"schemaforge/internal/templates"
)

// Service: зависимости обработчиков. Состояния между запросами нет.
type Service struct {
	Defaults  generator.Options
	Templates templates.Catalog
	Log       *zap.Logger
}

func NewService(defaults generator.Options, catalog templates.Catalog, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{Defaults: defaults, Templates: catalog, Log: log}
}

type parseRequest struct {
	Source string `json:"source"`
	Format string `json:"format"`
}

type generateRequest struct {
	Schema        json.RawMessage `json:"schema"`
	Family        *string         `json:"family"`
	SmartDefaults *bool           `json:"smartDefaults"`
	Pluralize     *bool           `json:"pluralize"`
}

func (r generateRequest) overrides() genOverrides {
	return genOverrides{Family: r.Family, SmartDefaults: r.SmartDefaults, Pluralize: r.Pluralize}
}

type convertRequest struct {
	Source        string  `json:"source"`
	Format        string  `json:"format"`
	Family        *string `json:"family"`
	SmartDefaults *bool   `json:"smartDefaults"`
	Pluralize     *bool   `json:"pluralize"`
}

func (r convertRequest) overrides() genOverrides {
	return genOverrides{Family: r.Family, SmartDefaults: r.SmartDefaults, Pluralize: r.Pluralize}
}

// parseSource: общий шаг parse/convert/lint.
func parseSource(c *gin.Context, source, rawFormat string) (schema.Schema, parser.Format, bool) {
	format, err := parser.ParseFormat(rawFormat)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return schema.Schema{}, "", false
	}
	if strings.TrimSpace(source) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source is required"})
		return schema.Schema{}, "", false
	}
	s, used, err := parser.Parse(source, format)
	if err != nil {
		writeParseError(c, err)
		return schema.Schema{}, "", false
	}
	return s, used, true
}

// GET /api/health
func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// GET /api/templates
func TemplateListHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Templates.List())
	}
}

// GET /api/templates/:name
func TemplateHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := svc.Templates.Lookup(c.Param("name"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

// POST /api/parse
func ParseHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req parseRequest
		if !bindJSON(c, &req) {
			return
		}
		s, used, ok := parseSource(c, req.Source, req.Format)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"format": used, "schema": s, "warnings": warnings(s)})
	}
}

// POST /api/generate: schema проходит строгий разбор
func GenerateHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req generateRequest
		if !bindJSON(c, &req) {
			return
		}
		if len(req.Schema) == 0 || string(req.Schema) == "null" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "schema is required"})
			return
		}
		opts, err := req.overrides().apply(svc.Defaults)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s, err := parser.ParseJSON(string(req.Schema))
		if err != nil {
			writeParseError(c, err)
			return
		}
		code := generator.Generate(s, opts)
		svc.Log.Debug("generated", zap.String("schema", s.Name), zap.String("family", string(opts.Family)))
		c.JSON(http.StatusOK, gin.H{
			"validator": code.Validator,
			"interface": code.Interface,
			"model":     code.Model,
			"warnings":  warnings(s),
		})
	}
}

// POST /api/convert: parse + generate за один запрос
func ConvertHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req convertRequest
		if !bindJSON(c, &req) {
			return
		}
		opts, err := req.overrides().apply(svc.Defaults)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s, used, ok := parseSource(c, req.Source, req.Format)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"format":   used,
			"schema":   s,
			"code":     generator.Generate(s, opts),
			"warnings": warnings(s),
		})
	}
}

// POST /api/lint
func LintHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req parseRequest
		if !bindJSON(c, &req) {
			return
		}
		s, _, ok := parseSource(c, req.Source, req.Format)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"issues": warnings(s)})
	}
}
