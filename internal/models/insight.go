package models

import "fmt"

type InsightType string

const (
	InsightCritical InsightType = "critical"
	InsightWarning  InsightType = "warning"
	InsightSuccess  InsightType = "success"
	InsightInfo     InsightType = "info"
)

// Insight is generated per request and never stored.
type Insight struct {
	Type    InsightType `json:"type"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
	Action  string      `json:"action,omitempty"`
}

// Marker is the short display tag for the insight type.
func (t InsightType) Marker() string {
	switch t {
	case InsightCritical:
		return "[!!]"
	case InsightWarning:
		return "[!]"
	case InsightSuccess:
		return "[+]"
	default:
		return "[i]"
	}
}

func (i Insight) String() string {
	s := fmt.Sprintf("%s %s: %s", i.Type.Marker(), i.Title, i.Message)
	if i.Action != "" {
		s += " Recommendation: " + i.Action
	}
	return s
}

type InsightsResponse struct {
	Insights []Insight `json:"insights"`
}

type AnalysisResponse struct {
	Period   string    `json:"period"`
	Insights []Insight `json:"insights"`
}
