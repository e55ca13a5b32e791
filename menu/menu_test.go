package menu

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/yllada/twingate-tray/common"
	"github.com/yllada/twingate-tray/network"
)

var epoch = time.UnixMilli(0)

func sampleSnapshot() *network.Snapshot {
	return &network.Snapshot{
		User: network.User{Email: "ada@acme.io"},
		Resources: []network.Resource{
			{ID: "v1", Name: "Wiki", Address: "wiki.internal", IsVisibleInClient: true},
			{ID: "b1", Name: "Metrics", Address: "10.0.0.7", AuthExpiresAt: 3 * millisPerDay},
			{ID: "v2", Name: "Git", Address: "git.internal", IsVisibleInClient: true, AuthExpiresAt: 172800000},
			{ID: "b2", Name: "DB", Address: "db.internal"},
		},
	}
}

func titles(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it.Kind == KindSeparator {
			out = append(out, "---")
			continue
		}
		out = append(out, it.Title)
	}
	return out
}

func TestBuild_TopLevelLayout(t *testing.T) {
	spec := NewBuilder("Twingate").Build(sampleSnapshot(), epoch)

	want := []string{
		"ada@acme.io",
		"Stop Twingate Service",
		"Quit",
		"---",
		"2 Resources",
		"Wiki",
		"Git",
		"---",
		"2 Background Resources",
		"Metrics",
		"DB",
	}
	got := titles(spec.Items)
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("layout =\n%v\nwant\n%v", got, want)
	}

	user, _ := spec.Find(UserStatusID)
	if !user.Disabled {
		t.Error("user label should be disabled")
	}
	count, _ := spec.Find(ResourceCountID)
	if !count.Disabled {
		t.Error("resource count should be disabled")
	}
	stop, _ := spec.Find(StopServiceID)
	if stop.Disabled {
		t.Error("stop action should be enabled")
	}
}

func TestBuild_Deterministic(t *testing.T) {
	b := NewBuilder("Twingate")
	snap := sampleSnapshot()

	first := b.Build(snap, epoch)
	second := b.Build(snap, epoch)
	if !first.Equal(second) {
		t.Error("Build should yield identical specs for the same snapshot")
	}

	snap.Resources[0].Name = "Renamed"
	if first.Equal(b.Build(snap, epoch)) {
		t.Error("Equal should notice a changed title")
	}
}

func TestBuild_PartitionInvariant(t *testing.T) {
	snap := sampleSnapshot()
	spec := NewBuilder("Twingate").Build(snap, epoch)

	seen := map[string]int{}
	for _, sub := range spec.Submenus() {
		action, err := ParseID(sub.ID)
		if err != nil || action.Kind != ActionResourceMenu {
			t.Fatalf("submenu id %q does not decode: %v", sub.ID, err)
		}
		seen[action.ResourceID]++
	}
	for _, r := range snap.Resources {
		if seen[r.ID] != 1 {
			t.Errorf("resource %s appears %d times, want exactly once", r.ID, seen[r.ID])
		}
	}
}

func TestBuild_ResourceSubmenu(t *testing.T) {
	spec := NewBuilder("Twingate").Build(sampleSnapshot(), epoch)

	wiki, ok := spec.Find(ItemID(ActionResourceMenu, "v1"))
	if !ok {
		t.Fatal("wiki submenu missing")
	}
	want := []string{"wiki.internal", "Copy Address", "---", "Authentication Required", "Authenticate..."}
	if got := titles(wiki.Children); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("wiki children = %v, want %v", got, want)
	}
	if !wiki.Children[0].Disabled || wiki.Children[1].Disabled {
		t.Error("address label disabled, copy action enabled")
	}
	if wiki.Children[1].ID != "copy_address-v1" {
		t.Errorf("copy id = %q", wiki.Children[1].ID)
	}
	if wiki.Children[4].ID != "authenticate-v1" || wiki.Children[4].Disabled {
		t.Errorf("authenticate item = %+v", wiki.Children[4])
	}

	git, _ := spec.Find(ItemID(ActionResourceMenu, "v2"))
	last := git.Children[len(git.Children)-1]
	if last.Title != "Auth expires in 2 days" || !last.Disabled {
		t.Errorf("git auth label = %+v", last)
	}
	if _, ok := spec.Find("authenticate-v2"); ok {
		t.Error("authenticated resource should not offer Authenticate")
	}
}

func TestAuthDaysRemaining(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt int64
		now       time.Time
		want      int64
	}{
		{"two days", 172800000, epoch, 2},
		{"one point oh four days floors", 90000000, epoch, 1},
		{"under a day", 3600000, epoch, 0},
		{"exactly now", 5000, time.UnixMilli(5000), 0},
		{"in the past", 1000, time.UnixMilli(1000 + millisPerDay), 0},
		{"relative to now", time.UnixMilli(1e12).Add(50 * time.Hour).UnixMilli(), time.UnixMilli(1e12), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AuthDaysRemaining(tt.expiresAt, tt.now); got != tt.want {
				t.Errorf("AuthDaysRemaining(%d) = %d, want %d", tt.expiresAt, got, tt.want)
			}
		})
	}
}

func TestBuild_AuthLabelFloor(t *testing.T) {
	snap := &network.Snapshot{Resources: []network.Resource{
		{ID: "x", Name: "X", AuthExpiresAt: 90000000, IsVisibleInClient: true},
	}}
	spec := NewBuilder("Twingate").Build(snap, epoch)

	label, ok := spec.Find(ItemID(ActionAuthStatus, "x"))
	if !ok || label.Title != "Auth expires in 1 days" {
		t.Errorf("auth label = %q, want %q", label.Title, "Auth expires in 1 days")
	}
}

func TestBuild_EndToEnd(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	snap := &network.Snapshot{
		User: network.User{Email: "ada@acme.io"},
		Resources: []network.Resource{
			{ID: "a", Name: "Alpha", Address: "alpha.internal", IsVisibleInClient: true, AuthExpiresAt: 0},
			{ID: "b", Name: "Beta", Address: "beta.internal", AuthExpiresAt: now.Add(5 * 24 * time.Hour).UnixMilli()},
		},
	}

	spec := NewBuilder("Twingate").Build(snap, now)

	subs := spec.Submenus()
	if len(subs) != 2 {
		t.Fatalf("len(Submenus) = %d, want 2", len(subs))
	}
	if subs[0].Title != "Alpha" || subs[1].Title != "Beta" {
		t.Errorf("submenus = %q, %q", subs[0].Title, subs[1].Title)
	}

	alpha := titles(subs[0].Children)
	if alpha[3] != "Authentication Required" || alpha[4] != "Authenticate..." {
		t.Errorf("alpha children = %v", alpha)
	}
	beta := titles(subs[1].Children)
	if beta[len(beta)-1] != "Auth expires in 5 days" {
		t.Errorf("beta children = %v", beta)
	}

	visibleCount, _ := spec.Find(ResourceCountID)
	bgCount, _ := spec.Find(BackgroundCountID)
	if visibleCount.Title != "1 Resources" || bgCount.Title != "1 Background Resources" {
		t.Errorf("counts = %q, %q", visibleCount.Title, bgCount.Title)
	}
}

func TestBuild_EmptySnapshot(t *testing.T) {
	spec := NewBuilder("Twingate").Build(&network.Snapshot{}, epoch)

	if len(spec.Submenus()) != 0 {
		t.Error("empty snapshot should have no submenus")
	}
	if _, ok := spec.Find(QuitID); !ok {
		t.Error("quit must always be present")
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		id       string
		kind     ActionKind
		resource string
	}{
		{"quit", ActionQuit, ""},
		{"stop_service", ActionStopService, ""},
		{"user_status", ActionUserStatus, ""},
		{"num_resources", ActionResourceCount, ""},
		{"background_resources_count", ActionBackgroundCount, ""},
		{"copy_address-r1", ActionCopyAddress, "r1"},
		{"authenticate-r1", ActionAuthenticate, "r1"},
		{"resource_address-r1", ActionResourceAddress, "r1"},
		{"auth_status-r1", ActionAuthStatus, "r1"},
		{"resource-r1", ActionResourceMenu, "r1"},
		// Ids containing the separator resolve in full.
		{"copy_address-db-eu-1", ActionCopyAddress, "db-eu-1"},
		{"authenticate--lead", ActionAuthenticate, "-lead"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			action, err := ParseID(tt.id)
			if err != nil {
				t.Fatalf("ParseID(%q) error = %v", tt.id, err)
			}
			if action.Kind != tt.kind || action.ResourceID != tt.resource {
				t.Errorf("ParseID(%q) = %+v, want {%v %q}", tt.id, action, tt.kind, tt.resource)
			}
		})
	}
}

func TestParseID_Invalid(t *testing.T) {
	for _, id := range []string{"", "auth_required", "copy_address", "copy_address-", "open-r1", "copy-address-r1", "quit-r1", "stop_service-r1", "user_status-x"} {
		t.Run(id, func(t *testing.T) {
			if _, err := ParseID(id); !errors.Is(err, common.ErrUnknownAction) {
				t.Errorf("ParseID(%q) error = %v, want ErrUnknownAction", id, err)
			}
		})
	}
}

func TestItemID_RoundTrip(t *testing.T) {
	for _, resourceID := range []string{"abc", "UmVzb3VyY2U6MTIz", "db-eu-1", "a-b-c-d"} {
		for _, kind := range []ActionKind{ActionCopyAddress, ActionAuthenticate} {
			id := ItemID(kind, resourceID)
			action, err := ParseID(id)
			if err != nil {
				t.Fatalf("ParseID(%q) error = %v", id, err)
			}
			if action.Kind != kind || action.ResourceID != resourceID {
				t.Errorf("round trip of %q = %+v", id, action)
			}
		}
	}
}

// The last-separator rule truncates ids that contain the separator. ParseID
// must not reproduce it.
func TestParseID_NotLastSeparator(t *testing.T) {
	id := ItemID(ActionCopyAddress, "db-eu-1")
	legacy := id[strings.LastIndex(id, "-")+1:]
	if legacy != "1" {
		t.Fatalf("legacy rule = %q, expected the truncated id", legacy)
	}

	action, _ := ParseID(id)
	if action.ResourceID == legacy {
		t.Error("ParseID resolved to the truncated id")
	}
}

func TestConstructors(t *testing.T) {
	copyItem := Clickable("copy_address-r1", "Copy Address", "Copy wiki.internal")
	if copyItem.Kind != KindItem || copyItem.Disabled || copyItem.Tooltip != "Copy wiki.internal" {
		t.Errorf("Clickable() = %+v", copyItem)
	}
	if label := Label("user_status", "ada@acme.io"); !label.Disabled {
		t.Error("Label() should be disabled")
	}
	sub := Submenu("resource-r1", "Wiki", copyItem, Separator())
	if sub.Kind != KindSubmenu || len(sub.Children) != 2 || sub.Children[1].Kind != KindSeparator {
		t.Errorf("Submenu() = %+v", sub)
	}
}
