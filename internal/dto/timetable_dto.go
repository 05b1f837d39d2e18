package dto

import "encoding/json"

// TimetableGenerateRequest is the payload forwarded to the hosted
// ai-timetable-generator function. The sections are opaque to this service;
// only their presence is checked.
type TimetableGenerateRequest struct {
	SchoolData  json.RawMessage `json:"schoolData" validate:"required"`
	Settings    json.RawMessage `json:"settings" validate:"required"`
	Constraints json.RawMessage `json:"constraints"`
	TeacherData json.RawMessage `json:"teacherData" validate:"required"`
	SubjectData json.RawMessage `json:"subjectData" validate:"required"`
	RoomData    json.RawMessage `json:"roomData" validate:"required"`
}

// TimetableGenerateResponse relays the generator's artifact and stats.
type TimetableGenerateResponse struct {
	Timetable json.RawMessage `json:"timetable"`
	Stats     json.RawMessage `json:"stats,omitempty"`
}
