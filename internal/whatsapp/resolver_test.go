package whatsapp

import (
	"errors"
	"testing"
)

func testGroups() []Group {
	return []Group{
		{ID: "g1", DisplayName: "Family Group 2024", MemberCount: 12},
		{ID: "g2", DisplayName: "Site Crew — Riverside", MemberCount: 8},
		{ID: "g3", DisplayName: "Suppliers", MemberCount: 5},
	}
}

func TestResolveGroup_ExactName(t *testing.T) {
	g, err := ResolveGroup("Suppliers", testGroups())
	if err != nil {
		t.Fatalf("ResolveGroup: %v", err)
	}
	if g.ID != "g3" {
		t.Errorf("resolved %q, want g3", g.ID)
	}
}

func TestResolveGroup_PartialCaseInsensitive(t *testing.T) {
	g, err := ResolveGroup("family", testGroups())
	if err != nil {
		t.Fatalf("ResolveGroup: %v", err)
	}
	if g.ID != "g1" {
		t.Errorf("resolved %q, want g1", g.ID)
	}
}

func TestResolveGroup_NameLongerThanDisplayName(t *testing.T) {
	// The user pasted more than the group is called.
	g, err := ResolveGroup("suppliers and vendors", testGroups())
	if err != nil {
		t.Fatalf("ResolveGroup: %v", err)
	}
	if g.ID != "g3" {
		t.Errorf("resolved %q, want g3", g.ID)
	}
}

func TestResolveGroup_NotFoundListsAvailable(t *testing.T) {
	_, err := ResolveGroup("architects", testGroups())
	var nf *GroupNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %v, want GroupNotFoundError", err)
	}
	if nf.Name != "architects" {
		t.Errorf("Name = %q, want %q", nf.Name, "architects")
	}
	if len(nf.Available) != 3 || nf.Available[0] != "Family Group 2024" {
		t.Errorf("Available = %v, want all three display names in order", nf.Available)
	}
}

func TestResolveGroup_MultipleMatchesFirstWins(t *testing.T) {
	groups := []Group{
		{ID: "a", DisplayName: "Site Crew A"},
		{ID: "b", DisplayName: "Site Crew B"},
	}
	g, err := ResolveGroup("site crew", groups)
	if err != nil {
		t.Fatalf("ResolveGroup: %v", err)
	}
	if g.ID != "a" {
		t.Errorf("resolved %q, want first match a", g.ID)
	}
}

func TestResolveGroup_NoGroups(t *testing.T) {
	_, err := ResolveGroup("anything", nil)
	var nf *GroupNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %v, want GroupNotFoundError", err)
	}
	if len(nf.Available) != 0 {
		t.Errorf("Available = %v, want empty", nf.Available)
	}
}
