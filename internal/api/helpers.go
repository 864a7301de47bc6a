package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"schemaforge/internal/generator"
	"schemaforge/internal/parser"
	"schemaforge/internal/schema"
)

// bindJSON читает тело запроса через go-json.
func bindJSON(c *gin.Context, dst any) bool {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON", "details": err.Error()})
		return false
	}
	return true
}

// writeParseError: syntax -> 400, semantic -> 422.
func writeParseError(c *gin.Context, err error) {
	pe, ok := parser.AsParseError(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	status := http.StatusBadRequest
	if pe.Kind == parser.KindSemantic {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{
		"error":  pe.Message,
		"kind":   pe.Kind,
		"format": pe.Format,
	})
}

// warnings: замечания линтера, всегда массив.
func warnings(s schema.Schema) []schema.Issue {
	issues := schema.Lint(s)
	if issues == nil {
		return []schema.Issue{}
	}
	return issues
}

// genOverrides: необязательные параметры генерации из тела запроса.
type genOverrides struct {
	Family        *string
	SmartDefaults *bool
	Pluralize     *bool
}

func (o genOverrides) apply(base generator.Options) (generator.Options, error) {
	opts := base
	if o.Family != nil {
		f, err := generator.ParseFamily(*o.Family)
		if err != nil {
			return opts, err
		}
		opts.Family = f
	}
	if o.SmartDefaults != nil {
		opts.SmartDefaults = *o.SmartDefaults
	}
	if o.Pluralize != nil {
		opts.Pluralize = *o.Pluralize
	}
	return opts, nil
}
