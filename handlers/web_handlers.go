package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sitemetrics/lookup_api/models"
	"github.com/sitemetrics/lookup_api/pkg/lookup/authority"
	"github.com/sitemetrics/lookup_api/pkg/lookup/wordpress"
	"github.com/sitemetrics/lookup_api/pkg/normalize"
)

// WebAnalysisHandlers groups the site analysis endpoints: WordPress
// detection and domain authority.
type WebAnalysisHandlers struct {
	detector  *wordpress.Detector
	authority *authority.Service
	logger    *slog.Logger
}

func NewWebAnalysisHandlers(detector *wordpress.Detector, authoritySvc *authority.Service, logger *slog.Logger) *WebAnalysisHandlers {
	return &WebAnalysisHandlers{detector: detector, authority: authoritySvc, logger: logger}
}

// WordPressHandler godoc
// @Summary      Detect WordPress on a site
// @Description  Fetches the target site and inspects markup, headers and technology fingerprints for WordPress, its version, active theme and visible plugins.
// @Tags         Web Analysis
// @Produce      json
// @Param        url query string true "Site URL (scheme defaults to https)"
// @Success      200 {object} models.WordPressResponse
// @Failure      400 {object} models.ErrorResponse "Malformed URL"
// @Failure      500 {object} models.ErrorResponse "Site unreachable"
// @Router       /wordpress [get]
func (h *WebAnalysisHandlers) WordPressHandler(c *gin.Context) {
	siteURL, err := normalize.SiteURL(c.Query("url"))
	if err != nil {
		respondError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), lookupTimeout)
	defer cancel()

	detection, err := h.detector.Detect(ctx, siteURL)
	if err != nil {
		respondError(c, err)
		return
	}

	response := models.WordPressResponse{
		URL:         models.SafeURLString(detection.FinalURL),
		IsWordPress: detection.IsWordPress,
		Version:     detection.Version,
		Plugins:     detection.Plugins,
		Server:      detection.Server,
		LastUpdated: time.Now().UTC(),
	}
	if response.Plugins == nil {
		response.Plugins = []string{}
	}
	if detection.Theme != nil {
		response.Theme = &models.ThemeInfo{
			Name:        detection.Theme.Name,
			Version:     detection.Theme.Version,
			Author:      detection.Theme.Author,
			Description: detection.Theme.Description,
			URL:         detection.Theme.URL,
		}
	}

	c.JSON(http.StatusOK, response)
}

// AuthorityHandler godoc
// @Summary      Look up domain authority
// @Description  Proxies a domain authority ranking provider and returns the normalized score.
// @Tags         Web Analysis
// @Produce      json
// @Param        domain query string true "Domain to rank"
// @Success      200 {object} models.AuthorityResponse
// @Failure      400 {object} models.ErrorResponse "Malformed domain"
// @Failure      500 {object} models.ErrorResponse "Provider exhausted"
// @Router       /authority [get]
func (h *WebAnalysisHandlers) AuthorityHandler(c *gin.Context) {
	domain, err := normalize.Domain(c.Query("domain"))
	if err != nil {
		respondError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), lookupTimeout)
	defer cancel()

	score, err := h.authority.Rank(ctx, domain)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AuthorityResponse{
		Domain:      domain,
		PageRank:    score.PageRank,
		GlobalRank:  score.GlobalRank,
		LastUpdated: time.Now().UTC(),
	})
}
