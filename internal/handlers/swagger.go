package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
	"gopkg.in/yaml.v3"

	"github.com/casedesk/casedesk/internal/docs"
)

type SwaggerHandler struct {
	logger *slog.Logger
}

func NewSwaggerHandler(log *slog.Logger) *SwaggerHandler {
	return &SwaggerHandler{logger: log.With(slog.String("handler", "swagger"))}
}

func (h *SwaggerHandler) Register(e *echo.Echo) {
	e.GET("/api/swagger.json", h.JSON)
	e.GET("/api/swagger.yaml", h.YAML)
}

// JSON godoc
// @Summary OpenAPI document
// @Tags docs
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/swagger.json [get]
func (h *SwaggerHandler) JSON(c echo.Context) error {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		h.logger.Error("read swagger doc failed", slog.Any("error", err))
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, []byte(doc))
}

// YAML godoc
// @Summary OpenAPI document as YAML
// @Tags docs
// @Produce plain
// @Success 200 {string} string
// @Router /api/swagger.yaml [get]
func (h *SwaggerHandler) YAML(c echo.Context) error {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		h.logger.Error("read swagger doc failed", slog.Any("error", err))
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	out, err := toBlockYAML([]byte(doc))
	if err != nil {
		h.logger.Error("convert swagger doc failed", slog.Any("error", err))
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Blob(http.StatusOK, "application/yaml", out)
}

// toBlockYAML re-encodes a JSON document as block-style YAML, keeping key order.
func toBlockYAML(doc []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(doc, &node); err != nil {
		return nil, err
	}
	clearStyle(&node)
	return yaml.Marshal(&node)
}

func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		clearStyle(child)
	}
}
