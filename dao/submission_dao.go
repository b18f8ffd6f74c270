// dao/submission_dao.go
package dao

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	cw_errors "github.com/harborworks/causeway-api/errors"
	logger "github.com/harborworks/causeway-api/logging"
	"github.com/harborworks/causeway-api/model"
	cw_graph "github.com/harborworks/causeway-api/model/graph"
)

// SubmissionDAO stores workflow submissions. The approve/reject transitions
// are conditional updates guarded on status = pending, so two concurrent
// decisions on the same submission cannot both succeed.
type SubmissionDAO struct {
	Driver neo4j.Driver
}

func NewSubmissionDAO(driver neo4j.Driver) *SubmissionDAO {
	return &SubmissionDAO{Driver: driver}
}

func (dao *SubmissionDAO) Create(ctx context.Context, submission model.Submission) (string, error) {
	start := time.Now()
	logger.Info("Creating submission",
		zap.String("templateID", submission.TemplateID),
		zap.String("orgID", submission.OrganizationID))
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	if submission.ID == "" {
		submission.ID = uuid.New().String()
	}

	fieldsJSON, err := json.Marshal(submission.Fields)
	if err != nil {
		return "", err
	}
	routingJSON, err := json.Marshal(submission.Routing)
	if err != nil {
		return "", err
	}
	submitterJSON, err := json.Marshal(submission.SubmittedBy)
	if err != nil {
		return "", err
	}

	result, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        CREATE (s:` + cw_graph.LabelSubmission + ` {
            id: $id,
            templateID: $templateID,
            organizationID: $organizationID,
            fields: $fields,
            status: $status,
            submittedBy: $submittedBy,
            submittedAt: $submittedAt,
            routing: $routing
        })
        WITH s
        MATCH (t:` + cw_graph.LabelTemplate + ` {id: $templateID})
        MERGE (s)-[:` + cw_graph.RelInstanceOf + `]->(t)
        RETURN s.id AS id
        `
		res, err := transaction.Run(query, map[string]interface{}{
			"id":             submission.ID,
			"templateID":     submission.TemplateID,
			"organizationID": submission.OrganizationID,
			"fields":         string(fieldsJSON),
			"status":         model.SubmissionStatusPending,
			"submittedBy":    string(submitterJSON),
			"submittedAt":    submission.SubmittedAt.Format(time.RFC3339),
			"routing":        string(routingJSON),
		})
		if err != nil {
			logger.Error("Failed to execute create submission query", zap.Error(err))
			return nil, cw_errors.ErrDatabaseOperation
		}
		if res.Next() {
			return res.Record().Values[0], nil
		}
		return nil, cw_errors.ErrInternalServer
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to create submission",
			zap.Error(err),
			zap.String("templateID", submission.TemplateID),
			zap.Duration("duration", duration))
		return "", err
	}

	submissionID := result.(string)
	logger.Info("Submission created successfully",
		zap.String("submissionID", submissionID),
		zap.Duration("duration", duration))
	return submissionID, nil
}

// Approve transitions a pending submission to approved. The WHERE clause
// is the linearization point: if another decision won the race, zero
// properties are set and the prior status determines the returned error.
func (dao *SubmissionDAO) Approve(ctx context.Context, orgID, submissionID string, record model.ApprovalRecord, processingHours float64) error {
	approvalJSON, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return dao.decide(ctx, orgID, submissionID, model.SubmissionStatusApproved, "approval", string(approvalJSON), processingHours)
}

// Reject transitions a pending submission to rejected, mirroring Approve.
func (dao *SubmissionDAO) Reject(ctx context.Context, orgID, submissionID string, record model.RejectionRecord, processingHours float64) error {
	rejectionJSON, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return dao.decide(ctx, orgID, submissionID, model.SubmissionStatusRejected, "rejection", string(rejectionJSON), processingHours)
}

func (dao *SubmissionDAO) decide(ctx context.Context, orgID, submissionID, newStatus, recordProp, recordJSON string, processingHours float64) error {
	start := time.Now()
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (s:` + cw_graph.LabelSubmission + ` {id: $id, organizationID: $organizationID})
        WHERE s.status = $expected
        SET s.status = $status, s.` + recordProp + ` = $record, s.processingHours = $processingHours
        RETURN s.id
        `
		res, err := transaction.Run(query, map[string]interface{}{
			"id":              submissionID,
			"organizationID":  orgID,
			"expected":        model.SubmissionStatusPending,
			"status":          newStatus,
			"record":          recordJSON,
			"processingHours": processingHours,
		})
		if err != nil {
			logger.Error("Failed to execute submission decision query", zap.Error(err))
			return nil, cw_errors.ErrDatabaseOperation
		}
		if res.Next() {
			return nil, nil
		}

		// The guarded update matched nothing; re-read to produce the
		// precise error.
		statusQuery := `
        MATCH (s:` + cw_graph.LabelSubmission + ` {id: $id, organizationID: $organizationID})
        RETURN s.status
        `
		statusRes, err := transaction.Run(statusQuery, map[string]interface{}{
			"id":             submissionID,
			"organizationID": orgID,
		})
		if err != nil {
			return nil, cw_errors.ErrDatabaseOperation
		}
		if !statusRes.Next() {
			return nil, cw_errors.ErrSubmissionNotFound
		}
		return nil, transitionError(statusRes.Record().Values[0].(string), newStatus)
	})

	duration := time.Since(start)
	if err != nil {
		logger.Warn("Submission decision not applied",
			zap.Error(err),
			zap.String("submissionID", submissionID),
			zap.String("requestedStatus", newStatus),
			zap.Duration("duration", duration))
		return err
	}

	logger.Info("Submission decided",
		zap.String("submissionID", submissionID),
		zap.String("status", newStatus),
		zap.Duration("duration", duration))
	return nil
}

func transitionError(current, requested string) error {
	switch {
	case current == model.SubmissionStatusApproved && requested == model.SubmissionStatusApproved:
		return cw_errors.ErrAlreadyApproved
	case current == model.SubmissionStatusRejected && requested == model.SubmissionStatusRejected:
		return cw_errors.ErrAlreadyRejected
	case current == model.SubmissionStatusRejected && requested == model.SubmissionStatusApproved:
		return cw_errors.ErrApproveAfterReject
	case current == model.SubmissionStatusApproved && requested == model.SubmissionStatusRejected:
		return cw_errors.ErrRejectAfterApprove
	}
	return cw_errors.ErrDatabaseOperation
}

func (dao *SubmissionDAO) Get(ctx context.Context, orgID, submissionID string) (*model.Submission, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	query := `
    MATCH (s:` + cw_graph.LabelSubmission + ` {id: $id, organizationID: $organizationID})
    RETURN s
    `
	result, err := session.Run(query, map[string]interface{}{
		"id":             submissionID,
		"organizationID": orgID,
	})
	if err != nil {
		logger.Error("Failed to execute get submission query",
			zap.Error(err),
			zap.String("submissionID", submissionID))
		return nil, cw_errors.ErrDatabaseOperation
	}

	if result.Next() {
		node := result.Record().Values[0].(neo4j.Node)
		return mapNodeToSubmission(node)
	}

	logger.Warn("Submission not found", zap.String("submissionID", submissionID))
	return nil, cw_errors.ErrSubmissionNotFound
}

// List retrieves submissions for an organization, optionally filtered by
// status, newest first.
func (dao *SubmissionDAO) List(ctx context.Context, orgID, status string, limit, offset int) ([]*model.Submission, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	query := `
    MATCH (s:` + cw_graph.LabelSubmission + ` {organizationID: $organizationID})
    WHERE $status = '' OR s.status = $status
    RETURN s
    ORDER BY s.submittedAt DESC
    SKIP $offset
    LIMIT $limit
    `
	result, err := session.Run(query, map[string]interface{}{
		"organizationID": orgID,
		"status":         status,
		"limit":          limit,
		"offset":         offset,
	})
	if err != nil {
		return nil, cw_errors.ErrDatabaseOperation
	}

	var submissions []*model.Submission
	for result.Next() {
		node := result.Record().Values[0].(neo4j.Node)
		submission, err := mapNodeToSubmission(node)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, submission)
	}
	return submissions, nil
}

func mapNodeToSubmission(node neo4j.Node) (*model.Submission, error) {
	props := node.Props
	submission := &model.Submission{
		ID:             props["id"].(string),
		TemplateID:     props["templateID"].(string),
		OrganizationID: props["organizationID"].(string),
		Status:         props["status"].(string),
	}
	if fields, ok := props["fields"].(string); ok && fields != "" {
		if err := json.Unmarshal([]byte(fields), &submission.Fields); err != nil {
			return nil, err
		}
	}
	if submitter, ok := props["submittedBy"].(string); ok && submitter != "" {
		if err := json.Unmarshal([]byte(submitter), &submission.SubmittedBy); err != nil {
			return nil, err
		}
	}
	if routing, ok := props["routing"].(string); ok && routing != "" {
		if err := json.Unmarshal([]byte(routing), &submission.Routing); err != nil {
			return nil, err
		}
	}
	if approval, ok := props["approval"].(string); ok && approval != "" {
		submission.Approval = &model.ApprovalRecord{}
		if err := json.Unmarshal([]byte(approval), submission.Approval); err != nil {
			return nil, err
		}
	}
	if rejection, ok := props["rejection"].(string); ok && rejection != "" {
		submission.Rejection = &model.RejectionRecord{}
		if err := json.Unmarshal([]byte(rejection), submission.Rejection); err != nil {
			return nil, err
		}
	}
	if hours, ok := props["processingHours"].(float64); ok {
		submission.ProcessingHours = hours
	}
	submission.SubmittedAt = parseNodeTime(props["submittedAt"])
	return submission, nil
}
