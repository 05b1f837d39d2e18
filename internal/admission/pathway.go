package admission

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Pathway selects which applicant category's field schema is active.
type Pathway string

// Application pathways.
const (
	PathwayStandard   Pathway = "standard"
	PathwaySEN        Pathway = "sen"
	PathwayStaffChild Pathway = "staff_child"
	PathwayEmergency  Pathway = "emergency"
)

// KnownPathway reports whether the pathway is part of the vocabulary.
func KnownPathway(p Pathway) bool {
	switch p {
	case PathwayStandard, PathwaySEN, PathwayStaffChild, PathwayEmergency:
		return true
	}
	return false
}

// PriorityScore derives the display-only priority metric. Emergency referrals
// and SEN applications surface first on the pipeline board.
func PriorityScore(p Pathway) int {
	switch p {
	case PathwayEmergency:
		return 90
	case PathwaySEN:
		return 70
	case PathwayStaffChild:
		return 50
	default:
		return 30
	}
}

const standardSchema = `{
  "type": "object",
  "properties": {
    "father_name": {"type": "string"},
    "father_phone": {"type": "string"},
    "mother_name": {"type": "string"},
    "mother_phone": {"type": "string"},
    "guardian_name": {"type": "string"},
    "guardian_phone": {"type": "string"},
    "previous_school": {"type": "string"},
    "nationality": {"type": "string"}
  },
  "anyOf": [
    {"required": ["father_name"]},
    {"required": ["mother_name"]},
    {"required": ["guardian_name"]}
  ]
}`

const senSchema = `{
  "type": "object",
  "required": ["sen_provisions"],
  "properties": {
    "sen_provisions": {"type": "array", "items": {"type": "string"}, "minItems": 1},
    "ehcp_in_place": {"type": "boolean"},
    "current_support_summary": {"type": "string"},
    "guardian_name": {"type": "string"},
    "guardian_phone": {"type": "string"}
  }
}`

const staffChildSchema = `{
  "type": "object",
  "required": ["staff_member_name", "staff_member_department"],
  "properties": {
    "staff_member_name": {"type": "string", "minLength": 1},
    "staff_member_department": {"type": "string", "minLength": 1},
    "staff_member_id": {"type": "string"}
  }
}`

const emergencySchema = `{
  "type": "object",
  "required": ["referral_agency", "referral_contact"],
  "properties": {
    "referral_agency": {"type": "string", "minLength": 1},
    "referral_contact": {"type": "string", "minLength": 1},
    "referral_reason": {"type": "string"},
    "safeguarding_notes": {"type": "string"}
  }
}`

var pathwaySchemas = map[Pathway]*jsonschema.Schema{
	PathwayStandard:   mustCompile("standard.schema.json", standardSchema),
	PathwaySEN:        mustCompile("sen.schema.json", senSchema),
	PathwayStaffChild: mustCompile("staff_child.schema.json", staffChildSchema),
	PathwayEmergency:  mustCompile("emergency.schema.json", emergencySchema),
}

func mustCompile(name, schema string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader([]byte(schema))); err != nil {
		panic(err)
	}
	return compiler.MustCompile(name)
}

// ValidatePathwayData checks the pathway-specific submitted payload against
// the pathway's schema. The payload becomes additional_data on the record.
func ValidatePathwayData(p Pathway, raw json.RawMessage) error {
	schema, ok := pathwaySchemas[p]
	if !ok {
		return fmt.Errorf("unknown pathway %q", p)
	}

	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}

	var payload interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("pathway data is not valid JSON: %w", err)
	}

	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("pathway data invalid: %w", err)
	}

	return nil
}
