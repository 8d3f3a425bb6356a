package types

import (
	"encoding/json"
	"time"
)

type MemberResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	IsAdmin   bool      `json:"isAdmin"`
	IsActive  bool      `json:"isActive"`
	AddedDate time.Time `json:"addedDate"`
}

type CategoryResponse struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Color           string    `json:"color"`
	Icon            string    `json:"icon"`
	IconURL         string    `json:"iconUrl"`
	AllocatedAmount float64   `json:"allocatedAmount"`
	CreatedBy       string    `json:"createdBy"`
	CreatedDate     time.Time `json:"createdDate"`
}

type ExpenseResponse struct {
	ID              uint            `json:"id"`
	Amount          float64         `json:"amount"`
	Description     string          `json:"description"`
	Date            time.Time       `json:"date"`
	CategoryID      uint            `json:"categoryId"`
	CategoryName    string          `json:"categoryName"`
	MemberID        *uint           `json:"memberId"`
	CalendarEntryID *uint           `json:"calendarEntryId"`
	AddedDate       time.Time       `json:"addedDate"`
	AddedBy         string          `json:"addedBy"`
	Comments        json.RawMessage `json:"comments"`
}

type CalendarEntryResponse struct {
	ID           uint            `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Date         time.Time       `json:"date"`
	CategoryID   *uint           `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Price        float64         `json:"price"`
	CreatedBy    string          `json:"createdBy"`
	AddedDate    time.Time       `json:"addedDate"`
	Comments     json.RawMessage `json:"comments"`
}

type CategorySummary struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	Color           string  `json:"color"`
	AllocatedAmount float64 `json:"allocatedAmount"`
	TotalExpenses   float64 `json:"totalExpenses"`
	Remaining       float64 `json:"remaining"`
}

type ExpenseSummaryResponse struct {
	Month           int     `json:"month"`
	Year            int     `json:"year"`
	TotalExpenses   float64 `json:"totalExpenses"`
	TotalMembers    int64   `json:"totalMembers"`
	PerPersonAmount float64 `json:"perPersonAmount"`
	// Reserved for settlement tracking, always 0 for now.
	Balance float64 `json:"balance"`
}
