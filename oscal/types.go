// Package oscal defines the OSCAL 1.2.0 artifact types this pipeline
// produces and enforces the output contract on model-generated payloads.
// A payload that fails validation is rejected whole; a partially-valid
// compliance artifact is worse than a clear failure.
package oscal

// Version is the OSCAL specification version all artifacts target.
const Version = "1.2.0"

// Envelope is the top-level SSP artifact document.
type Envelope struct {
	SystemSecurityPlan *SSP `json:"system-security-plan"`
}

// SSP is the system-security-plan body.
type SSP struct {
	UUID                  string                 `json:"uuid"`
	Metadata              *Metadata              `json:"metadata"`
	ImportProfile         *ImportProfile         `json:"import-profile"`
	SystemCharacteristics *SystemCharacteristics `json:"system-characteristics"`
	SystemImplementation  *SystemImplementation  `json:"system-implementation"`
	ControlImplementation *ControlImplementation `json:"control-implementation"`
}

// Metadata is the document metadata block shared by all artifact types.
type Metadata struct {
	Title        string  `json:"title"`
	LastModified string  `json:"last-modified"`
	Version      string  `json:"version"`
	OscalVersion string  `json:"oscal-version"`
	Roles        []Role  `json:"roles,omitempty"`
	Parties      []Party `json:"parties,omitempty"`
}

// Role is an organizational role referenced by parties.
type Role struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Party is an organization or individual.
type Party struct {
	UUID string `json:"uuid"`
	Type string `json:"type"`
	Name string `json:"name"`
}

// ImportProfile references the baseline profile this SSP is based on.
type ImportProfile struct {
	Href string `json:"href"`
}

// SystemCharacteristics describes the system under authorization.
type SystemCharacteristics struct {
	SystemIDs                []SystemID             `json:"system-ids"`
	SystemName               string                 `json:"system-name"`
	Description              string                 `json:"description"`
	SecuritySensitivityLevel string                 `json:"security-sensitivity-level"`
	SystemInformation        *SystemInformation     `json:"system-information"`
	SecurityImpactLevel      *SecurityImpactLevel   `json:"security-impact-level"`
	Status                   *Status                `json:"status"`
	AuthorizationBoundary    *AuthorizationBoundary `json:"authorization-boundary"`
}

// SystemID is one system identifier.
type SystemID struct {
	IdentifierType string `json:"identifier-type"`
	ID             string `json:"id"`
}

// SystemInformation carries NIST SP 800-60 information types.
type SystemInformation struct {
	InformationTypes []InformationType `json:"information-types"`
}

// InformationType is one categorized information type.
type InformationType struct {
	Title          string           `json:"title"`
	Categorization []Categorization `json:"categorization,omitempty"`
}

// Categorization references a categorization system entry with its
// per-objective impacts.
type Categorization struct {
	System                string  `json:"system"`
	InformationTypeID     string  `json:"information-type-id,omitempty"`
	ConfidentialityImpact *Impact `json:"confidentiality-impact,omitempty"`
	IntegrityImpact       *Impact `json:"integrity-impact,omitempty"`
	AvailabilityImpact    *Impact `json:"availability-impact,omitempty"`
}

// Impact is a single base impact value.
type Impact struct {
	Base string `json:"base"`
}

// SecurityImpactLevel carries the system's C/I/A objectives.
type SecurityImpactLevel struct {
	Confidentiality string `json:"security-objective-confidentiality"`
	Integrity       string `json:"security-objective-integrity"`
	Availability    string `json:"security-objective-availability"`
}

// Status is a state wrapper used for systems and components.
type Status struct {
	State string `json:"state"`
}

// AuthorizationBoundary describes what is inside and outside the boundary.
type AuthorizationBoundary struct {
	Description string `json:"description"`
}

// SystemImplementation lists users and components.
type SystemImplementation struct {
	Users      []User      `json:"users,omitempty"`
	Components []Component `json:"components"`
}

// User is a system user.
type User struct {
	UUID    string   `json:"uuid"`
	RoleIDs []string `json:"role-ids,omitempty"`
	Title   string   `json:"title,omitempty"`
}

// Component is one system component. Type "this-system" marks the
// primary system; "leveraged-system" marks inherited services.
type Component struct {
	UUID        string  `json:"uuid"`
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      *Status `json:"status"`
}

// ControlImplementation holds the implemented requirements.
type ControlImplementation struct {
	Description             string                   `json:"description"`
	ImplementedRequirements []ImplementedRequirement `json:"implemented-requirements"`
}

// ImplementedRequirement is one control's implementation entry.
type ImplementedRequirement struct {
	UUID       string      `json:"uuid"`
	ControlID  string      `json:"control-id"`
	Statements []Statement `json:"statements,omitempty"`
}

// Statement is one lettered statement of a control.
type Statement struct {
	StatementID  string        `json:"statement-id"`
	UUID         string        `json:"uuid"`
	ByComponents []ByComponent `json:"by-components,omitempty"`
}

// ByComponent records how one component satisfies a statement. The
// by-component pattern supports shared responsibility: separate entries
// for service-provider versus inherited controls.
type ByComponent struct {
	ComponentUUID        string  `json:"component-uuid"`
	Description          string  `json:"description"`
	ImplementationStatus *Status `json:"implementation-status,omitempty"`
}
