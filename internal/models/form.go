package models

import (
	"errors"
	"fmt"
	"time"
)

// RequestForm holds the fields shared by item borrow and room booking
// requests. Dates are submitted as YYYY-MM-DD and times as 24-hour HH:mm,
// the formats the backend expects.
type RequestForm struct {
	Name       string `json:"name"`
	BorrowerID string `json:"borrower_id"`
	Year       string `json:"year"`
	Department string `json:"department"`
	Course     string `json:"course"`
	Date       string `json:"date"`
	TimeIn     string `json:"time_in"`
	TimeOut    string `json:"time_out"`
}

// BorrowForm is the body for POST /requests.
type BorrowForm struct {
	RequestForm
	ItemID int64 `json:"item_id"`
}

// BookingForm is the body for POST /room-requests.
type BookingForm struct {
	RequestForm
	RoomID int64 `json:"room_id"`
}

// Validate checks the form before any network call is made. Validation
// failures never reach the backend.
func (f RequestForm) Validate() error {
	if f.Name == "" || f.BorrowerID == "" || f.Year == "" || f.Department == "" ||
		f.Course == "" || f.Date == "" || f.TimeIn == "" || f.TimeOut == "" {
		return errors.New("please fill in all fields")
	}
	if !ValidYear(f.Year) {
		return fmt.Errorf("unknown year level %q", f.Year)
	}
	if !ValidDepartment(f.Department) {
		return fmt.Errorf("unknown department %q", f.Department)
	}
	if !ValidCourse(f.Department, f.Course) {
		return fmt.Errorf("unknown course %q for department %s", f.Course, f.Department)
	}
	if _, err := time.Parse("2006-01-02", f.Date); err != nil {
		return fmt.Errorf("invalid date %q, want YYYY-MM-DD", f.Date)
	}
	if _, err := time.Parse("15:04", f.TimeIn); err != nil {
		return fmt.Errorf("invalid time in %q, want HH:mm", f.TimeIn)
	}
	if _, err := time.Parse("15:04", f.TimeOut); err != nil {
		return fmt.Errorf("invalid time out %q, want HH:mm", f.TimeOut)
	}
	return nil
}
