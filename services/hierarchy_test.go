package services

import (
	"errors"
	"testing"
)

func testProjects() []ProjectNode {
	return []ProjectNode{
		{
			ID:   "p1",
			Name: "Emerald Heights",
			Sites: []SiteNode{
				{ID: "s1", Name: "Phase 1", Wings: []WingNode{
					{ID: "w1", Name: "North Wing"},
					{ID: "w2", Name: "South Wing"},
				}},
				{ID: "s2", Name: "Phase 2", Wings: []WingNode{
					{ID: "w3", Name: "East Wing"},
				}},
			},
		},
		{
			ID:    "p2",
			Name:  "Lakeview",
			Sites: []SiteNode{{ID: "s3", Name: "Main Site"}},
		},
	}
}

func testCategories() []CategoryNode {
	return []CategoryNode{
		{ID: "c1", Name: "Civil Works", Children: []Option{
			{ID: "c1a", Name: "RCC Works"},
			{ID: "c1b", Name: "Masonry"},
		}},
		{ID: "c2", Name: "Finishing Works"},
	}
}

func TestHierarchy_ProjectSelectionResetsDescendants(t *testing.T) {
	s := NewHierarchyState(testProjects(), testCategories())

	s, _ = s.Apply(SelectProject{ID: "p1"})
	s, _ = s.Apply(SelectSite{ID: "s1"})
	s, _ = s.Apply(SelectWing{ID: "w1"})

	if s.ProjectID != "p1" || s.SiteID != "s1" || s.WingID != "w1" {
		t.Fatalf("unexpected selection chain: %q/%q/%q", s.ProjectID, s.SiteID, s.WingID)
	}

	s, _ = s.Apply(SelectProject{ID: "p2"})

	if s.SiteID != "" || s.WingID != "" {
		t.Errorf("site/wing not reset after project change: %q/%q", s.SiteID, s.WingID)
	}
	if len(s.SiteOptions) != 1 || s.SiteOptions[0].ID != "s3" {
		t.Errorf("site options not rebuilt for new project: %+v", s.SiteOptions)
	}
	if s.WingOptions != nil {
		t.Errorf("wing options should be cleared, got %+v", s.WingOptions)
	}
}

func TestHierarchy_SiteSelectionResetsWing(t *testing.T) {
	s := NewHierarchyState(testProjects(), testCategories())
	s, _ = s.Apply(SelectProject{ID: "p1"})
	s, _ = s.Apply(SelectSite{ID: "s1"})
	s, _ = s.Apply(SelectWing{ID: "w2"})

	s, _ = s.Apply(SelectSite{ID: "s2"})

	if s.WingID != "" {
		t.Errorf("wing not reset after site change: %q", s.WingID)
	}
	if len(s.WingOptions) != 1 || s.WingOptions[0].ID != "w3" {
		t.Errorf("wing options not rebuilt: %+v", s.WingOptions)
	}
}

func TestHierarchy_WingSelectionFetchesFloorsKeepsCategories(t *testing.T) {
	s := NewHierarchyState(testProjects(), testCategories())
	s, _ = s.Apply(SelectProject{ID: "p1"})
	s, _ = s.Apply(SelectSite{ID: "s1"})
	s, _ = s.Apply(SelectCategoryLevel{Level: 1, ID: "c1"})
	s, _ = s.Apply(SelectCategoryLevel{Level: 2, ID: "c1a"})

	s, effects := s.Apply(SelectWing{ID: "w1"})

	if len(effects) != 1 {
		t.Fatalf("expected one effect, got %d", len(effects))
	}
	fetch, ok := effects[0].(FetchFloors)
	if !ok {
		t.Fatalf("expected FetchFloors, got %T", effects[0])
	}
	if fetch.WingID != "w1" || fetch.Generation != s.FloorGeneration {
		t.Errorf("unexpected fetch: %+v (state generation %d)", fetch, s.FloorGeneration)
	}

	// The category axis is independent of the wing.
	if s.Levels[0].SelectedID != "c1" || s.Levels[1].SelectedID != "c1a" {
		t.Errorf("category path disturbed by wing change: %+v", s.Levels)
	}
}

func TestHierarchy_CategoryReselectionClearsDeeperLevels(t *testing.T) {
	s := NewHierarchyState(testProjects(), testCategories())
	s, _ = s.Apply(SelectCategoryLevel{Level: 1, ID: "c1"})
	s, _ = s.Apply(SelectCategoryLevel{Level: 2, ID: "c1a"})

	// Level 3 options arrive and get selected.
	gen := s.Levels[2].Generation
	s, _ = s.Apply(CategoryChildrenLoaded{Level: 3, Generation: gen, Options: []Option{{ID: "c3x", Name: "Slabs"}}})
	s, _ = s.Apply(SelectCategoryLevel{Level: 3, ID: "c3x"})

	// Reselecting level 1 must wipe levels 2..5.
	s, _ = s.Apply(SelectCategoryLevel{Level: 1, ID: "c2"})

	if s.Levels[0].SelectedID != "c2" {
		t.Errorf("level 1 selection = %q, want c2", s.Levels[0].SelectedID)
	}
	for i := 1; i < CategoryDepth; i++ {
		if s.Levels[i].SelectedID != "" {
			t.Errorf("level %d selection not cleared: %q", i+1, s.Levels[i].SelectedID)
		}
	}
	if s.Levels[1].Status != LevelReady {
		t.Errorf("level 2 should be ready with preloaded children, status %d", s.Levels[1].Status)
	}
	if len(s.Levels[1].Options) != 0 {
		t.Errorf("level 2 options should be empty for c2, got %+v", s.Levels[1].Options)
	}
}

func TestHierarchy_StaleLoadResultIsDiscarded(t *testing.T) {
	s := NewHierarchyState(testProjects(), testCategories())
	s, _ = s.Apply(SelectCategoryLevel{Level: 1, ID: "c1"})

	// First request for level 3.
	s, effects := s.Apply(SelectCategoryLevel{Level: 2, ID: "c1a"})
	first, ok := effects[0].(FetchSubCategories)
	if !ok {
		t.Fatalf("expected FetchSubCategories, got %T", effects[0])
	}

	// Second request supersedes it before the first response lands.
	s, effects = s.Apply(SelectCategoryLevel{Level: 2, ID: "c1b"})
	second := effects[0].(FetchSubCategories)
	if second.Generation <= first.Generation {
		t.Fatalf("generation did not advance: %d then %d", first.Generation, second.Generation)
	}

	// The stale response must not take effect.
	s, _ = s.Apply(CategoryChildrenLoaded{Level: 3, Generation: first.Generation, Options: []Option{{ID: "stale", Name: "Stale"}}})
	if s.Levels[2].Status != LevelLoading {
		t.Errorf("stale result changed status to %d", s.Levels[2].Status)
	}
	if len(s.Levels[2].Options) != 0 {
		t.Errorf("stale options applied: %+v", s.Levels[2].Options)
	}

	// The current one does.
	s, _ = s.Apply(CategoryChildrenLoaded{Level: 3, Generation: second.Generation, Options: []Option{{ID: "fresh", Name: "Fresh"}}})
	if s.Levels[2].Status != LevelReady || len(s.Levels[2].Options) != 1 || s.Levels[2].Options[0].ID != "fresh" {
		t.Errorf("current result not applied: %+v", s.Levels[2])
	}
}

func TestHierarchy_LoadFailureLeavesLevelEmpty(t *testing.T) {
	s := NewHierarchyState(testProjects(), testCategories())
	s, _ = s.Apply(SelectCategoryLevel{Level: 1, ID: "c1"})
	s, effects := s.Apply(SelectCategoryLevel{Level: 2, ID: "c1a"})
	gen := effects[0].(FetchSubCategories).Generation

	s, effects = s.Apply(CategoryChildrenFailed{Level: 3, Generation: gen, Err: errors.New("boom")})

	if s.Levels[2].Status != LevelReady {
		t.Errorf("level 3 status = %d, want ready", s.Levels[2].Status)
	}
	if len(s.Levels[2].Options) != 0 {
		t.Errorf("level 3 options should be empty after failure: %+v", s.Levels[2].Options)
	}
	if len(effects) != 1 {
		t.Fatalf("expected a notify effect, got %d effects", len(effects))
	}
	if n, ok := effects[0].(Notify); !ok || n.Kind != "error" {
		t.Errorf("expected error notify, got %+v", effects[0])
	}
}

func TestHierarchy_SelectingUnloadedLevelIsIgnored(t *testing.T) {
	s := NewHierarchyState(testProjects(), testCategories())

	// Level 3 has never been loaded; a selection against it is dropped.
	next, effects := s.Apply(SelectCategoryLevel{Level: 3, ID: "c3x"})
	if next.Levels[2].SelectedID != "" {
		t.Errorf("selection accepted on unloaded level: %q", next.Levels[2].SelectedID)
	}
	if len(effects) != 0 {
		t.Errorf("expected no effects, got %+v", effects)
	}
}

func TestHierarchy_UnknownProjectNotifies(t *testing.T) {
	s := NewHierarchyState(testProjects(), testCategories())
	_, effects := s.Apply(SelectProject{ID: "missing"})
	if len(effects) != 1 {
		t.Fatalf("expected one effect, got %d", len(effects))
	}
	if n, ok := effects[0].(Notify); !ok || n.Kind != "error" {
		t.Errorf("expected error notify, got %+v", effects[0])
	}
}

func TestHierarchy_FifthLevelSelectionEmitsNoFetch(t *testing.T) {
	s := NewHierarchyState(testProjects(), testCategories())
	s, _ = s.Apply(SelectCategoryLevel{Level: 1, ID: "c1"})
	s, _ = s.Apply(SelectCategoryLevel{Level: 2, ID: "c1a"})

	for level := 3; level <= CategoryDepth; level++ {
		gen := s.Levels[level-1].Generation
		s, _ = s.Apply(CategoryChildrenLoaded{Level: level, Generation: gen, Options: []Option{{ID: "opt", Name: "Opt"}}})
		var effects []Effect
		s, effects = s.Apply(SelectCategoryLevel{Level: level, ID: "opt"})
		if level == CategoryDepth {
			if len(effects) != 0 {
				t.Errorf("level 5 selection emitted effects: %+v", effects)
			}
		} else if len(effects) != 1 {
			t.Fatalf("level %d selection should fetch level %d", level, level+1)
		}
	}

	path := s.CategoryPath()
	ids := path.IDs()
	if ids[0] != "c1" || ids[1] != "c1a" || ids[4] != "opt" {
		t.Errorf("unexpected category path: %+v", ids)
	}
}

func TestHierarchy_FloorsLoaded(t *testing.T) {
	s := NewHierarchyState(testProjects(), testCategories())
	s, _ = s.Apply(SelectProject{ID: "p1"})
	s, _ = s.Apply(SelectSite{ID: "s1"})
	s, effects := s.Apply(SelectWing{ID: "w1"})
	gen := effects[0].(FetchFloors).Generation

	s, effects = s.Apply(FloorsLoaded{Generation: gen, Floors: []FloorAllocation{
		{FloorID: "f1", Name: "Ground Floor"},
		{FloorID: "f2", Name: "First Floor"},
	}})

	if len(s.Floors) != 2 || s.Floors[0].FloorID != "f1" {
		t.Errorf("floors not applied: %+v", s.Floors)
	}
	if s.NoFloors {
		t.Error("NoFloors set despite a non-empty floor list")
	}
	if len(effects) != 0 {
		t.Errorf("expected no effects, got %+v", effects)
	}
}

func TestHierarchy_EmptyFloorListFlagsNoFloors(t *testing.T) {
	s := NewHierarchyState(testProjects(), testCategories())
	s, _ = s.Apply(SelectProject{ID: "p1"})
	s, _ = s.Apply(SelectSite{ID: "s1"})
	s, effects := s.Apply(SelectWing{ID: "w2"})
	gen := effects[0].(FetchFloors).Generation

	s, effects = s.Apply(FloorsLoaded{Generation: gen})

	if !s.NoFloors {
		t.Error("NoFloors not set for an empty floor list")
	}
	if len(effects) != 1 {
		t.Fatalf("expected one effect, got %d", len(effects))
	}
	if n, ok := effects[0].(Notify); !ok || n.Kind != "info" {
		t.Errorf("expected info notify, got %+v", effects[0])
	}
}

func TestHierarchy_StaleFloorResultIsDiscarded(t *testing.T) {
	s := NewHierarchyState(testProjects(), testCategories())
	s, _ = s.Apply(SelectProject{ID: "p1"})
	s, _ = s.Apply(SelectSite{ID: "s1"})
	s, effects := s.Apply(SelectWing{ID: "w1"})
	first := effects[0].(FetchFloors).Generation

	// A second wing selection supersedes the pending fetch.
	s, effects = s.Apply(SelectWing{ID: "w2"})
	second := effects[0].(FetchFloors).Generation
	if second <= first {
		t.Fatalf("floor generation did not advance: %d then %d", first, second)
	}

	s, _ = s.Apply(FloorsLoaded{Generation: first, Floors: []FloorAllocation{{FloorID: "stale", Name: "Stale"}}})
	if len(s.Floors) != 0 {
		t.Errorf("stale floor result applied: %+v", s.Floors)
	}

	s, _ = s.Apply(FloorsLoaded{Generation: second, Floors: []FloorAllocation{{FloorID: "f9", Name: "Ninth Floor"}}})
	if len(s.Floors) != 1 || s.Floors[0].FloorID != "f9" {
		t.Errorf("current floor result not applied: %+v", s.Floors)
	}
}

func TestHierarchy_FloorFetchFailureNotifies(t *testing.T) {
	s := NewHierarchyState(testProjects(), testCategories())
	s, _ = s.Apply(SelectProject{ID: "p1"})
	s, _ = s.Apply(SelectSite{ID: "s1"})
	s, effects := s.Apply(SelectWing{ID: "w1"})
	gen := effects[0].(FetchFloors).Generation

	s, effects = s.Apply(FloorsFailed{Generation: gen, Err: errors.New("timeout")})

	if len(s.Floors) != 0 {
		t.Errorf("floors should be empty after failure: %+v", s.Floors)
	}
	if len(effects) != 1 {
		t.Fatalf("expected a notify effect, got %d effects", len(effects))
	}
	if n, ok := effects[0].(Notify); !ok || n.Kind != "error" {
		t.Errorf("expected error notify, got %+v", effects[0])
	}
}

func TestHierarchy_ApplyDoesNotMutateReceiver(t *testing.T) {
	s := NewHierarchyState(testProjects(), testCategories())
	before := s

	s.Apply(SelectProject{ID: "p1"})

	if before.ProjectID != s.ProjectID || s.ProjectID != "" {
		t.Errorf("Apply mutated the receiver: %q", s.ProjectID)
	}
}
