package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"smartclaim-api/config"
	"smartclaim-api/services"

	"github.com/gin-gonic/gin"
)

func reportService() *services.ReportService {
	return services.NewReportService(config.DB)
}

// parseReportFilter reads ?status=&from=&to= query parameters. Dates bound
// the claim date inclusively; "to" extends to the end of its day.
func parseReportFilter(c *gin.Context) (services.ReportFilter, error) {
	filter := services.ReportFilter{Status: c.Query("status")}

	if from := c.Query("from"); from != "" {
		parsed, err := time.Parse("2006-01-02", from)
		if err != nil {
			return filter, fmt.Errorf("invalid from date, expected YYYY-MM-DD")
		}
		filter.From = &parsed
	}
	if to := c.Query("to"); to != "" {
		parsed, err := time.Parse("2006-01-02", to)
		if err != nil {
			return filter, fmt.Errorf("invalid to date, expected YYYY-MM-DD")
		}
		endOfDay := parsed.Add(24*time.Hour - time.Nanosecond)
		filter.To = &endOfDay
	}
	return filter, nil
}

// GetReport returns the filtered claim list and its aggregate stats.
func GetReport(c *gin.Context) {
	filter, err := parseReportFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims, stats, err := reportService().Report(identityFromContext(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"claims": claims,
		"stats":  stats,
	})
}

// ExportReport streams the filtered claim set as a CSV download.
func ExportReport(c *gin.Context) {
	filter, err := parseReportFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims, _, err := reportService().Report(identityFromContext(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := services.WriteCSV(&buf, claims); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build CSV export"})
		return
	}

	filename := fmt.Sprintf("claims-%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
