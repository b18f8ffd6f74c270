// dao/user_dao.go
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

type UserDAO struct {
	Driver neo4j.Driver
}

func NewUserDAO(driver neo4j.Driver) *UserDAO {
	dao := &UserDAO{Driver: driver}
	if err := dao.EnsureUniqueConstraint(context.Background()); err != nil {
		logger.Fatal("Failed to ensure unique constraint for User", zap.Error(err))
	}
	return dao
}

func (dao *UserDAO) EnsureUniqueConstraint(ctx context.Context) error {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        CREATE CONSTRAINT unique_user_id IF NOT EXISTS
        FOR (u:` + cw_graph.LabelUser + `) REQUIRE u.id IS UNIQUE
        `
		_, err := transaction.Run(query, nil)
		return nil, err
	})
	return err
}

// Create persists a user node with WORKS_FOR and HAS_ROLE links. The scopes
// property is the denormalized effective-scope mirror.
func (dao *UserDAO) Create(ctx context.Context, user model.User) (string, error) {
	start := time.Now()
	logger.Info("Creating user",
		zap.String("email", user.Email),
		zap.String("orgID", user.OrganizationID))
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Status == "" {
		user.Status = model.UserStatusActive
	}

	result, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		now := time.Now().Format(time.RFC3339)
		query := `
        CREATE (u:` + cw_graph.LabelUser + ` {
            id: $id,
            email: $email,
            name: $name,
            organizationID: $organizationID,
            scopes: $scopes,
            status: $status,
            createdAt: $createdAt,
            updatedAt: $updatedAt
        })
        WITH u
        MATCH (o:` + cw_graph.LabelOrganization + ` {id: $organizationID})
        MERGE (u)-[:` + cw_graph.RelWorksFor + `]->(o)
        WITH u
        UNWIND $roles AS roleID
        MATCH (r:` + cw_graph.LabelRole + ` {id: roleID, organizationID: $organizationID})
        MERGE (u)-[:` + cw_graph.RelHasRole + `]->(r)
        RETURN DISTINCT u.id AS id
        `
		params := map[string]interface{}{
			"id":             user.ID,
			"email":          user.Email,
			"name":           user.Name,
			"organizationID": user.OrganizationID,
			"scopes":         user.Scopes,
			"status":         user.Status,
			"roles":          user.Roles,
			"createdAt":      now,
			"updatedAt":      now,
		}

		res, err := transaction.Run(query, params)
		if err != nil {
			logger.Error("Failed to execute create user query", zap.Error(err))
			return nil, cw_errors.ErrDatabaseOperation
		}
		if res.Next() {
			return res.Record().Values[0], nil
		}
		return nil, cw_errors.ErrInternalServer
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
			zap.Duration("duration", duration))
		return "", err
	}

	userID := result.(string)
	logger.Info("User created successfully",
		zap.String("userID", userID),
		zap.Duration("duration", duration))
	return userID, nil
}

// Update applies a partial update. When the role list changes, existing
// HAS_ROLE links are replaced with the supplied set.
func (dao *UserDAO) Update(ctx context.Context, orgID, userID string, upd model.UserUpdate) (*model.User, error) {
	start := time.Now()
	logger.Info("Updating user", zap.String("userID", userID))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	result, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		props := map[string]interface{}{
			"updatedAt": time.Now().Format(time.RFC3339),
		}
		if upd.Name != nil {
			props["name"] = *upd.Name
		}
		if upd.Status != nil {
			props["status"] = *upd.Status
		}

		query := `
        MATCH (u:` + cw_graph.LabelUser + ` {id: $id, organizationID: $organizationID})
        SET u += $props
        RETURN u
        `
		res, err := transaction.Run(query, map[string]interface{}{
			"id":             userID,
			"organizationID": orgID,
			"props":          props,
		})
		if err != nil {
			logger.Error("Failed to execute update user query", zap.Error(err))
			return nil, cw_errors.ErrDatabaseOperation
		}
		if !res.Next() {
			return nil, cw_errors.ErrUserNotFound
		}
		node := res.Record().Values[0].(neo4j.Node)

		if upd.Roles != nil {
			rolesQuery := `
            MATCH (u:` + cw_graph.LabelUser + ` {id: $id})
            OPTIONAL MATCH (u)-[old:` + cw_graph.RelHasRole + `]->(:` + cw_graph.LabelRole + `)
            DELETE old
            WITH DISTINCT u
            UNWIND $roles AS roleID
            MATCH (r:` + cw_graph.LabelRole + ` {id: roleID, organizationID: $organizationID})
            MERGE (u)-[:` + cw_graph.RelHasRole + `]->(r)
            `
			if _, err := transaction.Run(rolesQuery, map[string]interface{}{
				"id":             userID,
				"organizationID": orgID,
				"roles":          *upd.Roles,
			}); err != nil {
				logger.Error("Failed to replace user role links", zap.Error(err))
				return nil, cw_errors.ErrDatabaseOperation
			}
		}

		user := mapNodeToUser(node)
		if upd.Roles != nil {
			user.Roles = *upd.Roles
		} else {
			roles, err := fetchUserRoleIDs(transaction, userID)
			if err != nil {
				return nil, err
			}
			user.Roles = roles
		}
		return user, nil
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to update user",
			zap.Error(err),
			zap.String("userID", userID),
			zap.Duration("duration", duration))
		return nil, err
	}

	logger.Info("User updated successfully",
		zap.String("userID", userID),
		zap.Duration("duration", duration))
	return result.(*model.User), nil
}

// SetScopes overwrites the denormalized scope mirror on the user node.
func (dao *UserDAO) SetScopes(ctx context.Context, orgID, userID string, scopes []model.Scope) error {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (u:` + cw_graph.LabelUser + ` {id: $id, organizationID: $organizationID})
        SET u.scopes = $scopes, u.updatedAt = $updatedAt
        RETURN u.id
        `
		res, err := transaction.Run(query, map[string]interface{}{
			"id":             userID,
			"organizationID": orgID,
			"scopes":         scopes,
			"updatedAt":      time.Now().Format(time.RFC3339),
		})
		if err != nil {
			return nil, cw_errors.ErrDatabaseOperation
		}
		if !res.Next() {
			return nil, cw_errors.ErrUserNotFound
		}
		return nil, nil
	})
	return err
}

// Delete removes the user node and its relationships.
func (dao *UserDAO) Delete(ctx context.Context, orgID, userID string) error {
	start := time.Now()
	logger.Info("Deleting user", zap.String("userID", userID))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (u:` + cw_graph.LabelUser + ` {id: $id, organizationID: $organizationID})
        DETACH DELETE u
        `
		res, err := transaction.Run(query, map[string]interface{}{
			"id":             userID,
			"organizationID": orgID,
		})
		if err != nil {
			return nil, cw_errors.ErrDatabaseOperation
		}
		summary, err := res.Consume()
		if err != nil {
			return nil, cw_errors.ErrDatabaseOperation
		}
		if summary.Counters().NodesDeleted() == 0 {
			return nil, cw_errors.ErrUserNotFound
		}
		return nil, nil
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to delete user",
			zap.Error(err),
			zap.String("userID", userID),
			zap.Duration("duration", duration))
		return err
	}

	logger.Info("User deleted successfully",
		zap.String("userID", userID),
		zap.Duration("duration", duration))
	return nil
}

// Get retrieves a user with their assigned role ids.
func (dao *UserDAO) Get(ctx context.Context, orgID, userID string) (*model.User, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	query := `
    MATCH (u:` + cw_graph.LabelUser + ` {id: $id, organizationID: $organizationID})
    OPTIONAL MATCH (u)-[:` + cw_graph.RelHasRole + `]->(r:` + cw_graph.LabelRole + `)
    RETURN u, collect(r.id) AS roles
    `
	result, err := session.Run(query, map[string]interface{}{
		"id":             userID,
		"organizationID": orgID,
	})
	if err != nil {
		logger.Error("Failed to execute get user query",
			zap.Error(err),
			zap.String("userID", userID))
		return nil, cw_errors.ErrDatabaseOperation
	}

	if result.Next() {
		node := result.Record().Values[0].(neo4j.Node)
		user := mapNodeToUser(node)
		for _, r := range result.Record().Values[1].([]interface{}) {
			user.Roles = append(user.Roles, r.(string))
		}
		return user, nil
	}

	logger.Warn("User not found", zap.String("userID", userID))
	return nil, cw_errors.ErrUserNotFound
}

// List retrieves users for an organization, newest first.
func (dao *UserDAO) List(ctx context.Context, orgID string, limit, offset int) ([]*model.User, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	query := `
    MATCH (u:` + cw_graph.LabelUser + ` {organizationID: $organizationID})
    OPTIONAL MATCH (u)-[:` + cw_graph.RelHasRole + `]->(r:` + cw_graph.LabelRole + `)
    RETURN u, collect(r.id) AS roles
    ORDER BY u.createdAt DESC
    SKIP $offset
    LIMIT $limit
    `
	result, err := session.Run(query, map[string]interface{}{
		"organizationID": orgID,
		"limit":          limit,
		"offset":         offset,
	})
	if err != nil {
		logger.Error("Failed to execute list users query", zap.Error(err))
		return nil, cw_errors.ErrDatabaseOperation
	}

	var users []*model.User
	for result.Next() {
		node := result.Record().Values[0].(neo4j.Node)
		user := mapNodeToUser(node)
		for _, r := range result.Record().Values[1].([]interface{}) {
			user.Roles = append(user.Roles, r.(string))
		}
		users = append(users, user)
	}
	return users, nil
}

func fetchUserRoleIDs(transaction neo4j.Transaction, userID string) ([]string, error) {
	query := `
    MATCH (u:` + cw_graph.LabelUser + ` {id: $id})-[:` + cw_graph.RelHasRole + `]->(r:` + cw_graph.LabelRole + `)
    RETURN r.id
    `
	res, err := transaction.Run(query, map[string]interface{}{"id": userID})
	if err != nil {
		return nil, cw_errors.ErrDatabaseOperation
	}
	var roles []string
	for res.Next() {
		roles = append(roles, res.Record().Values[0].(string))
	}
	return roles, nil
}

func mapNodeToUser(node neo4j.Node) *model.User {
	props := node.Props
	user := &model.User{
		ID:             props["id"].(string),
		Email:          props["email"].(string),
		Name:           props["name"].(string),
		OrganizationID: props["organizationID"].(string),
	}
	if status, ok := props["status"]; ok {
		user.Status = status.(string)
	}
	if scopes, ok := props["scopes"].([]interface{}); ok {
		for _, s := range scopes {
			user.Scopes = append(user.Scopes, s.(string))
		}
	}
	user.CreatedAt = parseNodeTime(props["createdAt"])
	user.UpdatedAt = parseNodeTime(props["updatedAt"])
	return user
}
