package model

// TemplateStats is the derived counter set for one template. The processing
// time figure is the latest sample, not a weighted mean; Samples counts how
// many decisions contributed.
type TemplateStats struct {
	TemplateID         string  `json:"template_id"`
	Submitted          int64   `json:"submitted"`
	Pending            int64   `json:"pending"`
	Approved           int64   `json:"approved"`
	Rejected           int64   `json:"rejected"`
	AvgProcessingHours float64 `json:"avg_processing_hours"`
	Samples            int64   `json:"samples"`
}
