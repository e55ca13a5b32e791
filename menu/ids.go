package menu

import (
	"fmt"
	"strings"

	"github.com/yllada/twingate-tray/common"
)

// ActionKind identifies what a menu item does.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionUserStatus
	ActionStopService
	ActionQuit
	ActionResourceCount
	ActionBackgroundCount
	ActionResourceMenu
	ActionResourceAddress
	ActionCopyAddress
	ActionAuthStatus
	ActionAuthenticate
)

// Fixed identifiers of items that do not refer to a resource.
const (
	UserStatusID      = "user_status"
	StopServiceID     = "stop_service"
	QuitID            = "quit"
	ResourceCountID   = "num_resources"
	BackgroundCountID = "background_resources_count"
)

// Separator between an action prefix and the resource id.
const idSeparator = "-"

var fixedIDs = map[string]ActionKind{
	UserStatusID:      ActionUserStatus,
	StopServiceID:     ActionStopService,
	QuitID:            ActionQuit,
	ResourceCountID:   ActionResourceCount,
	BackgroundCountID: ActionBackgroundCount,
}

var resourcePrefixes = map[string]ActionKind{
	"resource":         ActionResourceMenu,
	"resource_address": ActionResourceAddress,
	"copy_address":     ActionCopyAddress,
	"auth_status":      ActionAuthStatus,
	"authenticate":     ActionAuthenticate,
}

// String returns the identifier prefix or literal for the kind.
func (k ActionKind) String() string {
	for id, kind := range fixedIDs {
		if kind == k {
			return id
		}
	}
	for prefix, kind := range resourcePrefixes {
		if kind == k {
			return prefix
		}
	}
	return "unknown"
}

// Action is a decoded menu item identifier.
type Action struct {
	Kind       ActionKind
	ResourceID string
}

// ItemID encodes a resource-scoped identifier as "{kind}-{resourceID}".
func ItemID(kind ActionKind, resourceID string) string {
	return kind.String() + idSeparator + resourceID
}

// ParseID decodes an identifier. Resource ids are taken as everything after
// the first separator, since kind prefixes never contain one; this keeps ids
// such as "copy_address-db-eu-1" resolving to "db-eu-1".
func ParseID(id string) (Action, error) {
	if kind, ok := fixedIDs[id]; ok {
		return Action{Kind: kind}, nil
	}

	prefix, resourceID, found := strings.Cut(id, idSeparator)
	kind, known := resourcePrefixes[prefix]
	if !found || !known {
		return Action{}, fmt.Errorf("%w: %q", common.ErrUnknownAction, id)
	}
	if resourceID == "" {
		return Action{}, fmt.Errorf("%w: %q has no resource id", common.ErrUnknownAction, id)
	}

	return Action{Kind: kind, ResourceID: resourceID}, nil
}
