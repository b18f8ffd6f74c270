// dao/role_dao.go
package dao

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	cw_errors "github.com/harborworks/causeway-api/errors"
	logger "github.com/harborworks/causeway-api/logging"
	"github.com/harborworks/causeway-api/model"
	cw_graph "github.com/harborworks/causeway-api/model/graph"
)

type RoleDAO struct {
	Driver neo4j.Driver
}

func NewRoleDAO(driver neo4j.Driver) *RoleDAO {
	dao := &RoleDAO{Driver: driver}
	if err := dao.EnsureUniqueConstraint(context.Background()); err != nil {
		logger.Fatal("Failed to ensure unique constraint for Role", zap.Error(err))
	}
	return dao
}

func (dao *RoleDAO) EnsureUniqueConstraint(ctx context.Context) error {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        CREATE CONSTRAINT unique_role_id IF NOT EXISTS
        FOR (r:` + cw_graph.LabelRole + `) REQUIRE r.id IS UNIQUE
        `
		_, err := transaction.Run(query, nil)
		return nil, err
	})
	return err
}

// Create persists a new role. Role names are unique per organization; a
// collision returns ErrRoleNameTaken. The name check and the create run in
// one write transaction.
func (dao *RoleDAO) Create(ctx context.Context, role model.Role) (string, error) {
	start := time.Now()
	logger.Info("Creating new role",
		zap.String("roleName", role.Name),
		zap.String("orgID", role.OrganizationID))
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	if role.ID == "" {
		role.ID = uuid.New().String()
	}

	result, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		checkQuery := `
        MATCH (r:` + cw_graph.LabelRole + ` {organizationID: $organizationID})
        WHERE r.name = $name
        RETURN r.id
        `
		check, err := transaction.Run(checkQuery, map[string]interface{}{
			"organizationID": role.OrganizationID,
			"name":           role.Name,
		})
		if err != nil {
			return nil, cw_errors.ErrDatabaseOperation
		}
		if check.Next() {
			return nil, cw_errors.ErrRoleNameTaken
		}

		now := time.Now().Format(time.RFC3339)
		query := `
        CREATE (r:` + cw_graph.LabelRole + ` {
            id: $id,
            name: $name,
            description: $description,
            organizationID: $organizationID,
            scopes: $scopes,
            createdAt: $createdAt,
            updatedAt: $updatedAt
        })
        WITH r
        MATCH (o:` + cw_graph.LabelOrganization + ` {id: $organizationID})
        MERGE (r)-[:` + cw_graph.RelPartOf + `]->(o)
        RETURN r.id AS id
        `
		params := map[string]interface{}{
			"id":             role.ID,
			"name":           role.Name,
			"description":    role.Description,
			"organizationID": role.OrganizationID,
			"scopes":         role.Scopes,
			"createdAt":      now,
			"updatedAt":      now,
		}

		res, err := transaction.Run(query, params)
		if err != nil {
			logger.Error("Failed to execute create role query", zap.Error(err))
			return nil, cw_errors.ErrDatabaseOperation
		}
		if res.Next() {
			return res.Record().Values[0], nil
		}
		return nil, cw_errors.ErrInternalServer
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to create role",
			zap.Error(err),
			zap.String("roleName", role.Name),
			zap.Duration("duration", duration))
		return "", err
	}

	roleID := result.(string)
	logger.Info("Role created successfully",
		zap.String("roleID", roleID),
		zap.Duration("duration", duration))
	return roleID, nil
}

// Update applies a partial update. A rename colliding with another role in
// the same organization returns ErrRoleNameTaken; renaming to a unique name
// leaves scopes untouched.
func (dao *RoleDAO) Update(ctx context.Context, orgID, roleID string, upd model.RoleUpdate) (*model.Role, error) {
	start := time.Now()
	logger.Info("Updating role", zap.String("roleID", roleID))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	result, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		if upd.Name != nil {
			checkQuery := `
            MATCH (r:` + cw_graph.LabelRole + ` {organizationID: $organizationID})
            WHERE r.name = $name AND r.id <> $id
            RETURN r.id
            `
			check, err := transaction.Run(checkQuery, map[string]interface{}{
				"organizationID": orgID,
				"name":           *upd.Name,
				"id":             roleID,
			})
			if err != nil {
				return nil, cw_errors.ErrDatabaseOperation
			}
			if check.Next() {
				return nil, cw_errors.ErrRoleNameTaken
			}
		}

		props := map[string]interface{}{
			"updatedAt": time.Now().Format(time.RFC3339),
		}
		if upd.Name != nil {
			props["name"] = *upd.Name
		}
		if upd.Description != nil {
			props["description"] = *upd.Description
		}
		if upd.Scopes != nil {
			props["scopes"] = *upd.Scopes
		}

		query := `
        MATCH (r:` + cw_graph.LabelRole + ` {id: $id, organizationID: $organizationID})
        SET r += $props
        RETURN r
        `
		res, err := transaction.Run(query, map[string]interface{}{
			"id":             roleID,
			"organizationID": orgID,
			"props":          props,
		})
		if err != nil {
			logger.Error("Failed to execute update role query", zap.Error(err))
			return nil, cw_errors.ErrDatabaseOperation
		}
		if res.Next() {
			node := res.Record().Values[0].(neo4j.Node)
			return mapNodeToRole(node), nil
		}
		return nil, cw_errors.ErrRoleNotFound
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to update role",
			zap.Error(err),
			zap.String("roleID", roleID),
			zap.Duration("duration", duration))
		return nil, err
	}

	logger.Info("Role updated successfully",
		zap.String("roleID", roleID),
		zap.Duration("duration", duration))
	return result.(*model.Role), nil
}

// Delete removes a role. Deletion is refused with ErrRoleInUse while any
// user still holds the role.
func (dao *RoleDAO) Delete(ctx context.Context, orgID, roleID string) error {
	start := time.Now()
	logger.Info("Deleting role", zap.String("roleID", roleID))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		holdersQuery := `
        MATCH (u:` + cw_graph.LabelUser + `)-[:` + cw_graph.RelHasRole + `]->(r:` + cw_graph.LabelRole + ` {id: $id, organizationID: $organizationID})
        RETURN count(u) AS holders
        `
		res, err := transaction.Run(holdersQuery, map[string]interface{}{
			"id":             roleID,
			"organizationID": orgID,
		})
		if err != nil {
			return nil, cw_errors.ErrDatabaseOperation
		}
		if res.Next() {
			if holders := res.Record().Values[0].(int64); holders > 0 {
				return nil, cw_errors.ErrRoleInUse
			}
		}

		deleteQuery := `
        MATCH (r:` + cw_graph.LabelRole + ` {id: $id, organizationID: $organizationID})
        DETACH DELETE r
        `
		delRes, err := transaction.Run(deleteQuery, map[string]interface{}{
			"id":             roleID,
			"organizationID": orgID,
		})
		if err != nil {
			return nil, cw_errors.ErrDatabaseOperation
		}

		summary, err := delRes.Consume()
		if err != nil {
			return nil, cw_errors.ErrDatabaseOperation
		}
		if summary.Counters().NodesDeleted() == 0 {
			return nil, cw_errors.ErrRoleNotFound
		}
		return nil, nil
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to delete role",
			zap.Error(err),
			zap.String("roleID", roleID),
			zap.Duration("duration", duration))
		return err
	}

	logger.Info("Role deleted successfully",
		zap.String("roleID", roleID),
		zap.Duration("duration", duration))
	return nil
}

// Get retrieves a role by id within an organization.
func (dao *RoleDAO) Get(ctx context.Context, orgID, roleID string) (*model.Role, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	query := `
    MATCH (r:` + cw_graph.LabelRole + ` {id: $id, organizationID: $organizationID})
    RETURN r
    `
	result, err := session.Run(query, map[string]interface{}{
		"id":             roleID,
		"organizationID": orgID,
	})
	if err != nil {
		logger.Error("Failed to execute get role query",
			zap.Error(err),
			zap.String("roleID", roleID))
		return nil, cw_errors.ErrDatabaseOperation
	}

	if result.Next() {
		node := result.Record().Values[0].(neo4j.Node)
		return mapNodeToRole(node), nil
	}

	logger.Warn("Role not found", zap.String("roleID", roleID))
	return nil, cw_errors.ErrRoleNotFound
}

// GetByIDs resolves several roles at once. Dangling ids are simply absent
// from the result; callers decide how to treat them.
func (dao *RoleDAO) GetByIDs(ctx context.Context, orgID string, roleIDs []string) ([]*model.Role, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	query := `
    MATCH (r:` + cw_graph.LabelRole + ` {organizationID: $organizationID})
    WHERE r.id IN $ids
    RETURN r
    `
	result, err := session.Run(query, map[string]interface{}{
		"organizationID": orgID,
		"ids":            roleIDs,
	})
	if err != nil {
		return nil, cw_errors.ErrDatabaseOperation
	}

	var roles []*model.Role
	for result.Next() {
		node := result.Record().Values[0].(neo4j.Node)
		roles = append(roles, mapNodeToRole(node))
	}
	return roles, nil
}

// List retrieves roles for an organization, newest first.
func (dao *RoleDAO) List(ctx context.Context, orgID string, limit, offset int) ([]*model.Role, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	query := `
    MATCH (r:` + cw_graph.LabelRole + ` {organizationID: $organizationID})
    RETURN r
    ORDER BY r.createdAt DESC
    SKIP $offset
    LIMIT $limit
    `
	result, err := session.Run(query, map[string]interface{}{
		"organizationID": orgID,
		"limit":          limit,
		"offset":         offset,
	})
	if err != nil {
		logger.Error("Failed to execute list roles query", zap.Error(err))
		return nil, cw_errors.ErrDatabaseOperation
	}

	var roles []*model.Role
	for result.Next() {
		node := result.Record().Values[0].(neo4j.Node)
		roles = append(roles, mapNodeToRole(node))
	}
	return roles, nil
}

// Holders returns the ids of every user currently holding the role. Used by
// the referential delete guard and the scope fan-out.
func (dao *RoleDAO) Holders(ctx context.Context, orgID, roleID string) ([]string, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	query := `
    MATCH (u:` + cw_graph.LabelUser + `)-[:` + cw_graph.RelHasRole + `]->(r:` + cw_graph.LabelRole + ` {id: $id, organizationID: $organizationID})
    RETURN u.id
    `
	result, err := session.Run(query, map[string]interface{}{
		"id":             roleID,
		"organizationID": orgID,
	})
	if err != nil {
		return nil, cw_errors.ErrDatabaseOperation
	}

	var holders []string
	for result.Next() {
		holders = append(holders, result.Record().Values[0].(string))
	}
	return holders, nil
}

func mapNodeToRole(node neo4j.Node) *model.Role {
	props := node.Props
	role := &model.Role{
		ID:             props["id"].(string),
		Name:           props["name"].(string),
		OrganizationID: props["organizationID"].(string),
	}
	if description, ok := props["description"]; ok {
		role.Description = description.(string)
	}
	if scopes, ok := props["scopes"].([]interface{}); ok {
		for _, s := range scopes {
			role.Scopes = append(role.Scopes, s.(string))
		}
	}
	role.CreatedAt = parseNodeTime(props["createdAt"])
	role.UpdatedAt = parseNodeTime(props["updatedAt"])
	return role
}

func parseNodeTime(v interface{}) time.Time {
	s, ok := v.(string)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
