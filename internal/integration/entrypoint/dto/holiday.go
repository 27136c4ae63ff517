package dto

import (
	"time"

	"github.com/elliotJHarding/transactions/internal/application/usecase/holiday"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
)

// CreateHolidayRequest represents the request body for holiday creation.
type CreateHolidayRequest struct {
	Name      string `json:"name" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

// HolidayResponse represents a holiday in API responses.
type HolidayResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// HolidaySummaryResponse represents a holiday with its spending totals.
type HolidaySummaryResponse struct {
	HolidayResponse
	TransactionCount int    `json:"transaction_count"`
	Total            string `json:"total"`
	Travel           string `json:"travel"`
	Hotels           string `json:"hotels"`
	Food             string `json:"food"`
}

// HolidayYearResponse groups holidays starting in one year.
type HolidayYearResponse struct {
	Year     int                      `json:"year"`
	Holidays []HolidaySummaryResponse `json:"holidays"`
}

// ToHolidayResponse converts a Holiday entity to its DTO.
func ToHolidayResponse(h *entity.Holiday) HolidayResponse {
	return HolidayResponse{
		ID:        h.ID.String(),
		Name:      h.Name,
		StartDate: h.StartDate.Format(time.DateOnly),
		EndDate:   h.EndDate.Format(time.DateOnly),
	}
}

// ToHolidaySummaryResponse converts a holiday summary to its DTO.
func ToHolidaySummaryResponse(s *holiday.Summary) HolidaySummaryResponse {
	return HolidaySummaryResponse{
		HolidayResponse:  ToHolidayResponse(s.Holiday),
		TransactionCount: s.TransactionCount,
		Total:            s.Total.StringFixed(2),
		Travel:           s.Travel.StringFixed(2),
		Hotels:           s.Hotels.StringFixed(2),
		Food:             s.Food.StringFixed(2),
	}
}

// ToHolidayYearResponses converts the grouped holiday listing to its DTOs.
func ToHolidayYearResponses(years []*holiday.YearGroup) []HolidayYearResponse {
	out := make([]HolidayYearResponse, len(years))
	for i, y := range years {
		holidays := make([]HolidaySummaryResponse, len(y.Holidays))
		for j, s := range y.Holidays {
			holidays[j] = ToHolidaySummaryResponse(s)
		}
		out[i] = HolidayYearResponse{Year: y.Year, Holidays: holidays}
	}
	return out
}
