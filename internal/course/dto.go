// AngelaMos | 2026
// dto.go

package course

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Number accepts a JSON number or a numeric string for the same field.
// A non-numeric string is recorded as present-but-invalid rather than
// failing the whole decode, so validation can name the offending field.
type Number struct {
	value   float64
	present bool
	valid   bool
}

func NewNumber(v float64) Number {
	return Number{value: v, present: true, valid: true}
}

func (n *Number) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	n.present = true

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil
		}
		n.value = v
		n.valid = true
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}

	n.value = v
	n.valid = true
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.present || !n.valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

func (n Number) Present() bool { return n.present }

func (n Number) Valid() bool { return n.valid }

func (n Number) Float64() float64 { return n.value }

type CreateCourseRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Thumbnail   string   `json:"thumbnail"`
	Price       Number   `json:"price"`
	Discount    Number   `json:"discount"`
	Sections    Sections `json:"sections"`
}

// UpdateCourseRequest uses pointers for the string fields so an absent field
// and an explicitly empty one are distinguishable; an explicit empty
// description is rejected, a missing one is left alone.
type UpdateCourseRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Thumbnail   *string  `json:"thumbnail"`
	Price       Number   `json:"price"`
	Discount    Number   `json:"discount"`
	Sections    Sections `json:"sections"`
}

type CourseResponse struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Thumbnail        string   `json:"thumbnail"`
	Price            float64  `json:"price"`
	Discount         float64  `json:"discount"`
	DiscountedPrice  float64  `json:"discountedPrice"`
	Sections         Sections `json:"sections"`
	InstructorID     string   `json:"instructorId"`
	IsPublished      bool     `json:"isPublished"`
	EnrolledStudents int      `json:"enrolledStudents"`
	CreatedAt        string   `json:"createdAt"`
}

func ToCourseResponse(c *Course) CourseResponse {
	sections := c.Sections
	if sections == nil {
		sections = Sections{}
	}

	return CourseResponse{
		ID:               c.ID,
		Title:            c.Title,
		Description:      c.Description,
		Thumbnail:        c.Thumbnail,
		Price:            c.Price,
		Discount:         c.Discount,
		DiscountedPrice:  c.DiscountedPrice(),
		Sections:         sections,
		InstructorID:     c.InstructorID,
		IsPublished:      c.IsPublished,
		EnrolledStudents: len(c.EnrolledStudents),
		CreatedAt:        c.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

type PublishResponse struct {
	ID          string `json:"id"`
	IsPublished bool   `json:"isPublished"`
}
