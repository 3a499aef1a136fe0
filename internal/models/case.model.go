package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList stores an ordered list of strings as a JSON text column,
// preserving element order across a round trip.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}

	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

type Case struct {
	BaseUUIDModel
	OwnerID string `gorm:"type:varchar(64);not null;index:idx_cases_owner" json:"userId"`

	IssueDescription  string     `gorm:"type:text;not null"        json:"issueDescription"`
	PartiesInvolved   string     `gorm:"type:text;not null"        json:"partiesInvolved"`
	IncidentDate      string     `gorm:"type:varchar(32);not null" json:"incidentDate"`
	ZipCode           string     `gorm:"type:varchar(5);not null"  json:"zipCode"`
	IssueImpact       StringList `gorm:"type:text"                 json:"issueImpact"`
	OtherImpact       string     `gorm:"type:text"                 json:"otherImpact,omitempty"`
	DesiredResolution string     `gorm:"type:text;not null"        json:"desiredResolution"`
	Documents         StringList `gorm:"type:text"                 json:"documents"`

	// Analysis fields, populated by the analysis controller after the fact.
	CaseClassification      *string    `gorm:"type:text" json:"caseClassification,omitempty"`
	RelevantLaws            StringList `gorm:"type:text" json:"relevantLaws"`
	Jurisdiction            *string    `gorm:"type:text" json:"jurisdiction,omitempty"`
	Recommendations         StringList `gorm:"type:text" json:"recommendations"`
	Deadlines               StringList `gorm:"type:text" json:"deadlines"`
	StrengthIndicators      *string    `gorm:"type:text" json:"strengthIndicators,omitempty"`
	SupportingDocumentation StringList `gorm:"type:text" json:"supportingDocumentation"`
	DraftedCommunication    *string    `gorm:"type:text" json:"draftedCommunication,omitempty"`
}

// Analysis is the structured result the model is instructed to return.
// Unknown fields come back as explicit nulls, not omissions.
type Analysis struct {
	CaseClassification      *string  `json:"caseClassification"`
	RelevantLaws            []string `json:"relevantLaws"`
	Jurisdiction            *string  `json:"jurisdiction"`
	Recommendations         []string `json:"recommendations"`
	Deadlines               []string `json:"deadlines"`
	StrengthIndicators      *string  `json:"strengthIndicators"`
	SupportingDocumentation []string `json:"supportingDocumentation"`
	DraftedCommunication    *string  `json:"draftedCommunication"`
}

// Apply copies the analysis onto the case record.
func (a *Analysis) Apply(c *Case) {
	c.CaseClassification = a.CaseClassification
	c.RelevantLaws = a.RelevantLaws
	c.Jurisdiction = a.Jurisdiction
	c.Recommendations = a.Recommendations
	c.Deadlines = a.Deadlines
	c.StrengthIndicators = a.StrengthIndicators
	c.SupportingDocumentation = a.SupportingDocumentation
	c.DraftedCommunication = a.DraftedCommunication
}

type CreateCaseRequest struct {
	IssueDescription  string   `json:"issueDescription"  form:"issueDescription"`
	PartiesInvolved   string   `json:"partiesInvolved"   form:"partiesInvolved"`
	IncidentDate      string   `json:"incidentDate"      form:"incidentDate"`
	ZipCode           string   `json:"zipCode"           form:"zipCode"`
	IssueImpact       []string `json:"issueImpact"       form:"issueImpact"`
	OtherImpact       string   `json:"otherImpact"       form:"otherImpact"`
	DesiredResolution string   `json:"desiredResolution" form:"desiredResolution"`
}
