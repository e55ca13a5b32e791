package network

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/yllada/twingate-tray/common"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Alias is an alternative address for a resource.
type Alias struct {
	Address string `json:"address"`
	OpenURL string `json:"open_url"`
}

// Resource is one network endpoint exposed through the client.
type Resource struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Type    string `json:"type"`
	// AdminURL links to the resource in the admin console.
	AdminURL string `json:"admin_url"`
	OpenURL  string `json:"open_url"`
	// AuthExpiresAt is the auth expiry in epoch milliseconds; 0 means
	// authentication is required.
	AuthExpiresAt int64  `json:"auth_expires_at"`
	AuthFlowID    string `json:"auth_flow_id"`
	// IsVisibleInClient selects the primary menu group over the background one.
	IsVisibleInClient bool    `json:"is_visible_in_client"`
	CanOpenInBrowser  bool    `json:"can_open_in_browser"`
	Aliases           []Alias `json:"aliases,omitempty"`
}

// RequiresAuth reports whether the resource needs a fresh authentication.
func (r *Resource) RequiresAuth() bool {
	return r.AuthExpiresAt == 0
}

// User is the identity signed in to the client.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AvatarURL string `json:"avatar_url"`
	IsAdmin   bool   `json:"is_admin"`
}

// Snapshot is the full state reported by one resource listing.
type Snapshot struct {
	AdminURL  string     `json:"admin_url"`
	User      User       `json:"user"`
	Resources []Resource `json:"resources"`
}

// ParseSnapshot decodes the notifier's resource listing.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var raw struct {
		AdminURL  string      `json:"admin_url"`
		User      *User       `json:"user"`
		Resources *[]Resource `json:"resources"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrProviderMalformed, err)
	}
	if raw.User == nil || raw.Resources == nil {
		return nil, fmt.Errorf("%w: missing user or resources", common.ErrProviderMalformed)
	}

	snap := &Snapshot{
		AdminURL:  raw.AdminURL,
		User:      *raw.User,
		Resources: *raw.Resources,
	}
	for i, r := range snap.Resources {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: resource %d has no id", common.ErrProviderMalformed, i)
		}
	}
	return snap, nil
}

// FindResource returns the resource with the given id.
func (s *Snapshot) FindResource(id string) (*Resource, bool) {
	for i := range s.Resources {
		if s.Resources[i].ID == id {
			return &s.Resources[i], true
		}
	}
	return nil, false
}

// Partition splits resources into visible and background groups, keeping
// the snapshot order within each group.
func (s *Snapshot) Partition() (visible, background []Resource) {
	for _, r := range s.Resources {
		if r.IsVisibleInClient {
			visible = append(visible, r)
		} else {
			background = append(background, r)
		}
	}
	return visible, background
}

// AuthRequiredCount returns how many resources need authentication.
func (s *Snapshot) AuthRequiredCount() int {
	n := 0
	for i := range s.Resources {
		if s.Resources[i].RequiresAuth() {
			n++
		}
	}
	return n
}
