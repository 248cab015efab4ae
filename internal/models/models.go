package models

import (
	"bytes"
	"encoding/json"
)

// FlexString decodes a JSON string, number, or null into a plain string.
// The backend is inconsistent about whether ids arrive as numbers or
// strings; after decoding, 42 and "42" compare equal.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	// Numbers keep their literal form.
	*f = FlexString(b)
	return nil
}

// User is the profile record returned by POST /login. The backend owns the
// shape; only the fields needed for display and matching are decoded.
type User struct {
	ID    FlexString `json:"id"`
	Email string     `json:"email"`
	Name  string     `json:"name"`
}

// Item is a borrowable item from GET /items.
type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Qty         int    `json:"qty"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// Room is a bookable room from GET /rooms.
type Room struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// BorrowRequest is an item borrow request from GET /requests. Which of the
// borrower-identifying fields is populated depends on how the record was
// created, and dates/times arrive under several source keys.
type BorrowRequest struct {
	ID         FlexString `json:"id"`
	Name       FlexString `json:"name"`
	BorrowerID FlexString `json:"borrower_id"`
	UserID     FlexString `json:"user_id"`
	Email      FlexString `json:"email"`
	Year       string     `json:"year"`
	Department string     `json:"department"`
	Course     string     `json:"course"`
	Date       string     `json:"date"`
	CreatedAt  string     `json:"created_at"`
	TimeIn     string     `json:"time_in"`
	StartTime  string     `json:"start_time"`
	TimeOut    string     `json:"time_out"`
	EndTime    string     `json:"end_time"`
	ItemID     FlexString `json:"item_id"`
}

// OwnerValues returns the populated borrower-identifying fields in fixed
// priority order: borrower_id, user_id, email, name.
func (r BorrowRequest) OwnerValues() []string {
	return nonEmpty(r.BorrowerID, r.UserID, r.Email, r.Name)
}

// RawDate returns the first populated date source key.
func (r BorrowRequest) RawDate() string {
	if r.Date != "" {
		return r.Date
	}
	return r.CreatedAt
}

// RawTimeIn returns the first populated start-time source key.
func (r BorrowRequest) RawTimeIn() string {
	if r.TimeIn != "" {
		return r.TimeIn
	}
	return r.StartTime
}

// RawTimeOut returns the first populated end-time source key.
func (r BorrowRequest) RawTimeOut() string {
	if r.TimeOut != "" {
		return r.TimeOut
	}
	return r.EndTime
}

// RoomRequest is a room reservation from GET /room-requests. It parallels
// BorrowRequest but is a distinct shape server-side.
type RoomRequest struct {
	ID         FlexString `json:"id"`
	Name       FlexString `json:"name"`
	BorrowerID FlexString `json:"borrower_id"`
	UserID     FlexString `json:"user_id"`
	Email      FlexString `json:"email"`
	Year       string     `json:"year"`
	Department string     `json:"department"`
	Course     string     `json:"course"`
	Date       string     `json:"date"`
	CreatedAt  string     `json:"created_at"`
	TimeIn     string     `json:"time_in"`
	StartTime  string     `json:"start_time"`
	TimeOut    string     `json:"time_out"`
	EndTime    string     `json:"end_time"`
	RoomID     FlexString `json:"room_id"`
}

// OwnerValues returns the populated borrower-identifying fields in fixed
// priority order: borrower_id, user_id, email, name.
func (r RoomRequest) OwnerValues() []string {
	return nonEmpty(r.BorrowerID, r.UserID, r.Email, r.Name)
}

// RawDate returns the first populated date source key.
func (r RoomRequest) RawDate() string {
	if r.Date != "" {
		return r.Date
	}
	return r.CreatedAt
}

// RawTimeIn returns the first populated start-time source key.
func (r RoomRequest) RawTimeIn() string {
	if r.TimeIn != "" {
		return r.TimeIn
	}
	return r.StartTime
}

// RawTimeOut returns the first populated end-time source key.
func (r RoomRequest) RawTimeOut() string {
	if r.TimeOut != "" {
		return r.TimeOut
	}
	return r.EndTime
}

func nonEmpty(vals ...FlexString) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v != "" {
			out = append(out, string(v))
		}
	}
	return out
}
