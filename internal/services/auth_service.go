package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/authorizerdev/authorizer-go"
	"github.com/styoin/styo-server/internal/config"
	"github.com/styoin/styo-server/internal/utils"
)

var (
	authClient *authorizer.AuthorizerClient
	authOnce   sync.Once
)

// Identity is the validated caller extracted from an Authorizer session.
// Principal is the opaque identity reference every record is keyed by.
type Identity struct {
	Principal string
	Email     string
	Roles     []string
}

// HasRole reports whether the session carries the given role.
func (i *Identity) HasRole(role string) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAuthorizerInitialized returns true if the Authorizer client is initialized
func IsAuthorizerInitialized() bool {
	return authClient != nil
}

// InitAuthorizer initializes the Authorizer client (singleton pattern)
func InitAuthorizer(cfg *config.Config) error {
	var initErr error

	authOnce.Do(func() {
		// Ping the Authorizer service first
		if err := utils.PingAuthorizer(cfg.AuthzURL); err != nil {
			initErr = fmt.Errorf("authorizer ping failed: %w", err)
			return
		}

		log.Printf("Initializing Authorizer: authorizerURL=%s, clientID=%s",
			cfg.AuthzURL, cfg.AuthzClientID)

		var err error
		authClient, err = authorizer.NewAuthorizerClient(cfg.AuthzClientID, cfg.AuthzURL, cfg.AuthzURL, nil)
		if err != nil {
			initErr = fmt.Errorf("failed to create authorizer client: %w", err)
			return
		}
	})

	return initErr
}

// ValidateSession validates a session cookie for the given roles and
// returns the caller identity.
func ValidateSession(cookie string, roles []string) (*Identity, error) {
	if authClient == nil {
		return nil, fmt.Errorf("authorizer client not initialized")
	}

	// Convert roles to []*string
	rolesPtrs := make([]*string, len(roles))
	for i := range roles {
		rolesPtrs[i] = &roles[i]
	}

	res, err := authClient.ValidateSession(&authorizer.ValidateSessionInput{
		Cookie: cookie,
		Roles:  rolesPtrs,
	})
	if err != nil {
		return nil, fmt.Errorf("session validation failed: %w", err)
	}

	if res == nil || !res.IsValid {
		return nil, fmt.Errorf("session is not valid")
	}

	return identityFromSessionUser(res.User)
}

// identityFromSessionUser reads the Authorizer user payload by its JSON
// keys. The id anchors every record; roles drive the isAdmin surface.
func identityFromSessionUser(sessionUser interface{}) (*Identity, error) {
	raw, err := json.Marshal(sessionUser)
	if err != nil {
		return nil, fmt.Errorf("failed to read session user: %w", err)
	}
	var user map[string]interface{}
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("failed to read session user: %w", err)
	}

	principal, _ := user["id"].(string)
	if principal == "" {
		return nil, fmt.Errorf("session user has no id")
	}
	email, _ := user["email"].(string)

	var roles []string
	switch v := user["roles"].(type) {
	case []interface{}:
		for _, r := range v {
			if s, ok := r.(string); ok {
				roles = append(roles, s)
			}
		}
	case string:
		// some Authorizer versions flatten roles to a comma list
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				roles = append(roles, s)
			}
		}
	}

	return &Identity{Principal: principal, Email: email, Roles: roles}, nil
}
