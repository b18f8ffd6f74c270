// model/graph/graph.go
package graph

// Node labels
const (
	// LabelOrganization represents a nonprofit organization (tenant)
	LabelOrganization = "Organization"

	// LabelUser represents a principal in the system
	LabelUser = "User"

	// LabelRole represents a reusable bundle of scopes
	LabelRole = "Role"

	// LabelTemplate represents a form template
	LabelTemplate = "Template"

	// LabelSubmission represents a filled-in form awaiting a decision
	LabelSubmission = "Submission"
)

// Relationship types
const (
	// RelPartOf links roles, templates and submissions to their organization
	RelPartOf = "PART_OF"

	// RelWorksFor links a user to their organization
	RelWorksFor = "WORKS_FOR"

	// RelHasRole links a user to an assigned role
	RelHasRole = "HAS_ROLE"

	// RelInstanceOf links a submission to the template it was created from
	RelInstanceOf = "INSTANCE_OF"
)

// Common node attributes
const (
	AttrID        = "id"
	AttrName      = "name"
	AttrStatus    = "status"
	AttrCreatedAt = "createdAt"
	AttrUpdatedAt = "updatedAt"
)
