// dao/claims_dao.go
package dao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/harborworks/causeway-api/model"
)

// ClaimsDAO stores the live authorization claims document per principal.
// Redis stands in for the identity provider's token claims: scope checks
// during request handling read from here, so a successful write is visible
// to the next request without re-authentication.
type ClaimsDAO struct {
	Client *redis.Client
}

func NewClaimsDAO(client *redis.Client) *ClaimsDAO {
	return &ClaimsDAO{Client: client}
}

func claimsKey(principalID string) string {
	return fmt.Sprintf("claims:%s", principalID)
}

// Set overwrites the claims document for a principal.
func (dao *ClaimsDAO) Set(ctx context.Context, claims model.Claims) error {
	data, err := json.Marshal(claims)
	if err != nil {
		return err
	}
	return dao.Client.Set(ctx, claimsKey(claims.PrincipalID), data, 0).Err()
}

// Get returns the claims document, or (nil, nil) when the principal has no
// claims record.
func (dao *ClaimsDAO) Get(ctx context.Context, principalID string) (*model.Claims, error) {
	data, err := dao.Client.Get(ctx, claimsKey(principalID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var claims model.Claims
	if err := json.Unmarshal(data, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

// Delete removes the claims document. Deleting an absent record is not an
// error.
func (dao *ClaimsDAO) Delete(ctx context.Context, principalID string) error {
	return dao.Client.Del(ctx, claimsKey(principalID)).Err()
}
