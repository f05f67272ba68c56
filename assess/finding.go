package assess

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// remediationDays maps risk level to the federal remediation window.
var remediationDays = map[string]int{
	"critical": 30,
	"high":     90,
	"moderate": 180,
	"low":      365,
}

// Milestone is one POA&M remediation milestone.
type Milestone struct {
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
}

// POAMEntry is a Plan of Action and Milestones entry in the FedRAMP
// POA&M template shape.
type POAMEntry struct {
	WeaknessDescription     string      `json:"weakness_description"`
	PointOfContact          string      `json:"point_of_contact"`
	ResourcesRequired       string      `json:"resources_required"`
	ScheduledCompletionDate string      `json:"scheduled_completion_date"`
	Milestones              []Milestone `json:"milestones"`
	Source                  string      `json:"source"`
	Status                  string      `json:"status"`
	DeviationRequest        bool        `json:"deviation_request"`
	OriginalDetectionDate   string      `json:"original_detection_date"`
	VendorDependency        bool        `json:"vendor_dependency"`
	FalsePositive           bool        `json:"false_positive"`
}

// Finding is a structured assessment finding with its POA&M entry.
type Finding struct {
	FindingID        string    `json:"finding_id"`
	POAMRequired     bool      `json:"poam_required"`
	POAMEntry        POAMEntry `json:"poam_entry"`
	RemediationSteps []string  `json:"remediation_steps"`
}

// GenerateFinding builds a POA&M finding for a gap at the given risk
// level. Milestones follow a two-phase structure: plan at the midpoint,
// implement by the completion date. Unknown risk levels fall back to the
// moderate 180-day window. The clock is a parameter so callers and tests
// get deterministic dates.
func GenerateFinding(gapSummary, riskLevel string, now time.Time) Finding {
	days, ok := remediationDays[normalize(riskLevel)]
	if !ok {
		days = remediationDays["moderate"]
	}

	completion := now.AddDate(0, 0, days).Format("2006-01-02")
	midpoint := now.AddDate(0, 0, days/2).Format("2006-01-02")
	detected := now.Format("2006-01-02")

	return Finding{
		FindingID:    fmt.Sprintf("F-%s-%d", now.Format("20060102"), 100+rand.IntN(900)),
		POAMRequired: true,
		POAMEntry: POAMEntry{
			WeaknessDescription:     gapSummary,
			PointOfContact:          "ISSO (to be assigned)",
			ResourcesRequired:       "Engineering and security team remediation effort",
			ScheduledCompletionDate: completion,
			Milestones: []Milestone{
				{Description: "Develop remediation plan and assign resources", DueDate: midpoint},
				{Description: "Implement remediation and validate effectiveness", DueDate: completion},
			},
			Source:                "assessment",
			Status:                "open",
			DeviationRequest:      false,
			OriginalDetectionDate: detected,
			VendorDependency:      false,
			FalsePositive:         false,
		},
		RemediationSteps: []string{
			gapSummary,
			fmt.Sprintf("Remediation target: %s (%d days based on %s risk level).", completion, days, riskLevel),
		},
	}
}
