package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fitness-score-server/internal/domain"
	"github.com/fitness-score-server/internal/history"
	"github.com/fitness-score-server/internal/service"
)

// monthlyTrendPoint is one month of re-scored history.
type monthlyTrendPoint struct {
	Month   string                `json:"month"` // YYYY-MM
	Average domain.MonthlyAverage `json:"average"`
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"version":   "1.0.0",
	})
}

// handleScore computes a fitness score from pre-aggregated metrics.
func (s *Server) handleScore(c *gin.Context) {
	var metrics domain.HealthMetrics
	if err := c.ShouldBindJSON(&metrics); err != nil {
		s.abortInvalidInput(c, "Invalid health metrics payload", err)
		return
	}

	c.JSON(http.StatusOK, s.scorer.CalculateFitnessScore(metrics))
}

// handleDailyScore scores one day of raw samples.
func (s *Server) handleDailyScore(c *gin.Context) {
	var day domain.DayRecord
	if err := c.ShouldBindJSON(&day); err != nil {
		s.abortInvalidInput(c, "Invalid day record payload", err)
		return
	}

	c.JSON(http.StatusOK, s.scorer.CalculateDailyFitnessScore(day))
}

// handleHistoryScores scores a sequence of days, preserving order.
func (s *Server) handleHistoryScores(c *gin.Context) {
	var days []domain.DayRecord
	if err := c.ShouldBindJSON(&days); err != nil {
		s.abortInvalidInput(c, "Invalid day records payload", err)
		return
	}

	c.JSON(http.StatusOK, s.scorer.CalculateDailyScoresFromHistoricalData(days))
}

// handleMonthlyAverage averages the scores of the submitted days.
func (s *Server) handleMonthlyAverage(c *gin.Context) {
	var days []domain.DayRecord
	if err := c.ShouldBindJSON(&days); err != nil {
		s.abortInvalidInput(c, "Invalid day records payload", err)
		return
	}

	c.JSON(http.StatusOK, s.scorer.CalculateDailyBasedMonthlyAverage(days))
}

// handleLevels lists the fitness level bands.
func (s *Server) handleLevels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"levels": service.LevelBands()})
}

// handleSaveDay stores one day of raw samples and returns its score.
func (s *Server) handleSaveDay(c *gin.Context) {
	var day domain.DayRecord
	if err := c.ShouldBindJSON(&day); err != nil {
		s.abortInvalidInput(c, "Invalid day record payload", err)
		return
	}

	if err := s.store.SaveDay(c.Request.Context(), &day); err != nil {
		s.abortStoreError(c, err, "Failed to save day record")
		return
	}

	s.log.WithFields(logrus.Fields{
		"date":       day.Date,
		"request_id": requestID(c),
	}).Info("Day record saved")

	c.JSON(http.StatusCreated, gin.H{
		"date":  day.Date,
		"score": s.scorer.CalculateDailyFitnessScore(day),
	})
}

// handleGetDay returns the stored raw samples for a date.
func (s *Server) handleGetDay(c *gin.Context) {
	day, err := s.store.GetDay(c.Request.Context(), c.Param("date"))
	if err != nil {
		s.abortStoreError(c, err, "Failed to load day record")
		return
	}

	c.JSON(http.StatusOK, day)
}

// handleScoreStoredDay re-scores the stored samples for a date.
func (s *Server) handleScoreStoredDay(c *gin.Context) {
	day, err := s.store.GetDay(c.Request.Context(), c.Param("date"))
	if err != nil {
		s.abortStoreError(c, err, "Failed to load day record")
		return
	}

	c.JSON(http.StatusOK, s.scorer.CalculateDailyFitnessScore(*day))
}

// handleListDays returns stored days within the from/to query range.
func (s *Server) handleListDays(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		s.abortInvalidInput(c, "Query parameters 'from' and 'to' are required", nil)
		return
	}

	days, err := s.store.ListRange(c.Request.Context(), from, to)
	if err != nil {
		s.abortStoreError(c, err, "Failed to list day records")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from":  from,
		"to":    to,
		"count": len(days),
		"days":  days,
	})
}

// handleMonthlyTrend returns per-month averages re-scored from stored
// samples. The postgres trend repository groups server-side; the SQLite
// fallback groups a range query in memory.
func (s *Server) handleMonthlyTrend(c *gin.Context) {
	months := 6
	if raw := c.Query("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 36 {
			s.abortInvalidInput(c, "Query parameter 'months' must be an integer between 1 and 36", err)
			return
		}
		months = parsed
	}

	points, err := s.collectMonthlyTrend(c, months)
	if err != nil {
		s.abortStoreError(c, err, "Failed to build monthly trend")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"months": len(points),
		"trend":  points,
	})
}

func (s *Server) collectMonthlyTrend(c *gin.Context, months int) ([]monthlyTrendPoint, error) {
	ctx := c.Request.Context()

	if s.trends != nil {
		monthKeys, err := s.trends.ListMonths(ctx, months)
		if err != nil {
			return nil, err
		}

		points := make([]monthlyTrendPoint, 0, len(monthKeys))
		for _, month := range monthKeys {
			days, err := s.trends.ListDaysForMonth(ctx, month)
			if err != nil {
				return nil, err
			}
			points = append(points, monthlyTrendPoint{
				Month:   month,
				Average: s.scorer.CalculateDailyBasedMonthlyAverage(days),
			})
		}
		return points, nil
	}

	// Fallback: one range query over whole calendar months, grouped in memory.
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	from := monthStart.AddDate(0, -(months - 1), 0)
	to := monthStart.AddDate(0, 1, -1)
	days, err := s.store.ListRange(ctx, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string][]domain.DayRecord)
	order := make([]string, 0, months)
	for _, day := range days {
		month := day.Date[:7]
		if _, seen := byMonth[month]; !seen {
			order = append(order, month)
		}
		byMonth[month] = append(byMonth[month], day)
	}

	// Newest first, to match the repository path.
	points := make([]monthlyTrendPoint, 0, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		month := order[i]
		points = append(points, monthlyTrendPoint{
			Month:   month,
			Average: s.scorer.CalculateDailyBasedMonthlyAverage(byMonth[month]),
		})
	}
	return points, nil
}

func (s *Server) abortInvalidInput(c *gin.Context, message string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, domain.NewAPIError(
		domain.ErrInvalidInput, message, details, requestID(c),
	))
}

func (s *Server) abortStoreError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, history.ErrDayNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, domain.NewAPIError(
			domain.ErrNotFound, "No record for the requested date", "", requestID(c),
		))
	case errors.Is(err, history.ErrInvalidDate):
		c.AbortWithStatusJSON(http.StatusBadRequest, domain.NewAPIError(
			domain.ErrInvalidInput, err.Error(), "", requestID(c),
		))
	default:
		s.log.WithFields(logrus.Fields{
			"request_id": requestID(c),
			"error":      err,
		}).Error(message)
		c.AbortWithStatusJSON(http.StatusInternalServerError, domain.NewAPIError(
			domain.ErrStorage, message, "", requestID(c),
		))
	}
}
