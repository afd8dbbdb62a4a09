package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/example/meeting-planner/internal/meeting"
)

// Book is the stored form of a list of meetings.
type Book struct {
	Meetings []MeetingRecord `json:"meetings" yaml:"meetings"`
}

// NewBook encodes meetings in order.
func NewBook(meetings []*meeting.Meeting) (Book, error) {
	records := make([]MeetingRecord, 0, len(meetings))
	for _, m := range meetings {
		record, err := FromMeeting(m)
		if err != nil {
			return Book{}, err
		}
		records = append(records, record)
	}
	return Book{Meetings: records}, nil
}

// ToMeetings decodes every record. Two records denoting the same meeting
// (same title and date-time) are rejected.
func (b Book) ToMeetings() ([]*meeting.Meeting, error) {
	meetings := make([]*meeting.Meeting, 0, len(b.Meetings))
	for _, record := range b.Meetings {
		m, err := record.ToMeeting()
		if err != nil {
			return nil, err
		}
		for _, existing := range meetings {
			if existing.IsSameMeeting(m) {
				return nil, &IllegalValueError{Field: "Meetings", Message: DuplicateMeetingMessage}
			}
		}
		meetings = append(meetings, m)
	}
	return meetings, nil
}

// EncodeJSON writes the book as indented JSON.
func EncodeJSON(w io.Writer, b Book) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encode json book: %w", err)
	}
	return nil
}

// DecodeJSON reads a JSON book.
func DecodeJSON(r io.Reader) (Book, error) {
	var b Book
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return Book{}, fmt.Errorf("decode json book: %w", err)
	}
	return b, nil
}

// EncodeYAML writes the book as YAML.
func EncodeYAML(w io.Writer, b Book) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encode yaml book: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml book: %w", err)
	}
	return nil
}

// DecodeYAML reads a YAML book.
func DecodeYAML(r io.Reader) (Book, error) {
	var b Book
	if err := yaml.NewDecoder(r).Decode(&b); err != nil {
		if errors.Is(err, io.EOF) {
			return Book{}, nil
		}
		return Book{}, fmt.Errorf("decode yaml book: %w", err)
	}
	return b, nil
}
