// dao/template_dao.go
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

// TemplateDAO stores form templates. Fields and routing are nested
// structures, so they are persisted as JSON string properties.
type TemplateDAO struct {
	Driver neo4j.Driver
}

func NewTemplateDAO(driver neo4j.Driver) *TemplateDAO {
	return &TemplateDAO{Driver: driver}
}

func (dao *TemplateDAO) Create(ctx context.Context, template model.Template) (string, error) {
	logger.Info("Creating template",
		zap.String("name", template.Name),
		zap.String("orgID", template.OrganizationID))
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	if template.ID == "" {
		template.ID = uuid.New().String()
	}

	fieldsJSON, err := json.Marshal(template.Fields)
	if err != nil {
		return "", err
	}
	routingJSON, err := json.Marshal(template.Routing)
	if err != nil {
		return "", err
	}

	result, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		now := time.Now().Format(time.RFC3339)
		query := `
        CREATE (t:` + cw_graph.LabelTemplate + ` {
            id: $id,
            name: $name,
            organizationID: $organizationID,
            fields: $fields,
            routing: $routing,
            createdAt: $createdAt,
            updatedAt: $updatedAt
        })
        WITH t
        MATCH (o:` + cw_graph.LabelOrganization + ` {id: $organizationID})
        MERGE (t)-[:` + cw_graph.RelPartOf + `]->(o)
        RETURN t.id AS id
        `
		res, err := transaction.Run(query, map[string]interface{}{
			"id":             template.ID,
			"name":           template.Name,
			"organizationID": template.OrganizationID,
			"fields":         string(fieldsJSON),
			"routing":        string(routingJSON),
			"createdAt":      now,
			"updatedAt":      now,
		})
		if err != nil {
			logger.Error("Failed to execute create template query", zap.Error(err))
			return nil, cw_errors.ErrDatabaseOperation
		}
		if res.Next() {
			return res.Record().Values[0], nil
		}
		return nil, cw_errors.ErrInternalServer
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (dao *TemplateDAO) Get(ctx context.Context, orgID, templateID string) (*model.Template, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	query := `
    MATCH (t:` + cw_graph.LabelTemplate + ` {id: $id, organizationID: $organizationID})
    RETURN t
    `
	result, err := session.Run(query, map[string]interface{}{
		"id":             templateID,
		"organizationID": orgID,
	})
	if err != nil {
		logger.Error("Failed to execute get template query",
			zap.Error(err),
			zap.String("templateID", templateID))
		return nil, cw_errors.ErrDatabaseOperation
	}

	if result.Next() {
		node := result.Record().Values[0].(neo4j.Node)
		return mapNodeToTemplate(node)
	}

	logger.Warn("Template not found", zap.String("templateID", templateID))
	return nil, cw_errors.ErrTemplateNotFound
}

func (dao *TemplateDAO) List(ctx context.Context, orgID string, limit, offset int) ([]*model.Template, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	query := `
    MATCH (t:` + cw_graph.LabelTemplate + ` {organizationID: $organizationID})
    RETURN t
    ORDER BY t.createdAt DESC
    SKIP $offset
    LIMIT $limit
    `
	result, err := session.Run(query, map[string]interface{}{
		"organizationID": orgID,
		"limit":          limit,
		"offset":         offset,
	})
	if err != nil {
		return nil, cw_errors.ErrDatabaseOperation
	}

	var templates []*model.Template
	for result.Next() {
		node := result.Record().Values[0].(neo4j.Node)
		template, err := mapNodeToTemplate(node)
		if err != nil {
			return nil, err
		}
		templates = append(templates, template)
	}
	return templates, nil
}

func mapNodeToTemplate(node neo4j.Node) (*model.Template, error) {
	props := node.Props
	template := &model.Template{
		ID:             props["id"].(string),
		Name:           props["name"].(string),
		OrganizationID: props["organizationID"].(string),
	}
	if fields, ok := props["fields"].(string); ok && fields != "" {
		if err := json.Unmarshal([]byte(fields), &template.Fields); err != nil {
			return nil, err
		}
	}
	if routing, ok := props["routing"].(string); ok && routing != "" {
		if err := json.Unmarshal([]byte(routing), &template.Routing); err != nil {
			return nil, err
		}
	}
	template.CreatedAt = parseNodeTime(props["createdAt"])
	template.UpdatedAt = parseNodeTime(props["updatedAt"])
	return template, nil
}
