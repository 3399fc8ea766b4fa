// Package services contains the pure domain logic behind the Service BOQ
// authoring form: the location/category selection cascade, the activity
// ledger, floor quantity distribution and submission payload assembly.
package services

import "fmt"

// CategoryDepth is the maximum number of work-category levels.
const CategoryDepth = 5

// Option is one selectable entry in a dependent dropdown.
type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// WingNode is a wing selectable under a site.
type WingNode struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SiteNode is a site with its associated wings.
type SiteNode struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Wings []WingNode `json:"wings"`
}

// ProjectNode is a project with its associated sites.
type ProjectNode struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Sites []SiteNode `json:"sites"`
}

// CategoryNode is a level-1 work category with its preloaded level-2 children.
type CategoryNode struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Children []Option `json:"children"`
}

// LevelStatus tracks where a category level sits in its load cycle.
type LevelStatus int

const (
	LevelUnselected LevelStatus = iota
	LevelLoading
	LevelReady
	LevelSelected
)

// CategoryLevel is the per-level state of the category cascade.
// Generation increments every time a load for the level is requested;
// load results carrying an older generation are discarded, so the options
// shown always belong to the most recent parent selection.
type CategoryLevel struct {
	Status     LevelStatus
	Options    []Option
	SelectedID string
	Generation int
}

// HierarchyState is the full selection state of the Service BOQ form:
// the project/site/wing location context plus the 5-level category path.
// It is an immutable value; Apply returns a modified copy.
type HierarchyState struct {
	Projects     []ProjectNode
	CategoryTree []CategoryNode

	ProjectID string
	SiteID    string
	WingID    string

	SiteOptions []Option
	WingOptions []Option

	Levels [CategoryDepth]CategoryLevel

	Floors          []FloorAllocation
	NoFloors        bool
	FloorGeneration int
}

// Event is a user selection or an async load result fed into Apply.
type Event interface{ isEvent() }

// SelectProject picks a project; site and wing are reset.
type SelectProject struct{ ID string }

// SelectSite picks a site under the current project; wing is reset.
type SelectSite struct{ ID string }

// SelectWing picks a wing and triggers a floor refetch.
type SelectWing struct{ ID string }

// SelectCategoryLevel picks the category at a 1-based level, clearing all
// deeper levels. Levels 3..5 options are fetched lazily via an effect.
type SelectCategoryLevel struct {
	Level int
	ID    string
}

// CategoryChildrenLoaded delivers the lazily fetched options for a level.
type CategoryChildrenLoaded struct {
	Level      int
	Generation int
	Options    []Option
}

// CategoryChildrenFailed reports a failed sub-category fetch.
type CategoryChildrenFailed struct {
	Level      int
	Generation int
	Err        error
}

// FloorsLoaded delivers the floor list fetched for the selected wing.
type FloorsLoaded struct {
	Generation int
	Floors     []FloorAllocation
}

// FloorsFailed reports a failed floor fetch.
type FloorsFailed struct {
	Generation int
	Err        error
}

func (SelectProject) isEvent()          {}
func (SelectSite) isEvent()             {}
func (SelectWing) isEvent()             {}
func (SelectCategoryLevel) isEvent()    {}
func (CategoryChildrenLoaded) isEvent() {}
func (CategoryChildrenFailed) isEvent() {}
func (FloorsLoaded) isEvent()           {}
func (FloorsFailed) isEvent()           {}

// Effect is an instruction for the caller: issue a fetch or show a notice.
type Effect interface{ isEffect() }

// FetchSubCategories asks the caller to load children of ParentID for the
// given (1-based) level, reporting back with the given generation.
type FetchSubCategories struct {
	ParentID   string
	Level      int
	Generation int
}

// FetchFloors asks the caller to reload the floor list for a wing.
type FetchFloors struct {
	WingID     string
	Generation int
}

// Notify surfaces a non-fatal notification to the user.
type Notify struct {
	Kind    string // "info" or "error"
	Message string
}

func (FetchSubCategories) isEffect() {}
func (FetchFloors) isEffect()        {}
func (Notify) isEffect()             {}

// NewHierarchyState builds the initial state from the preloaded project tree
// and the two preloaded category levels. Level 1 starts Ready; everything
// else is Unselected until its parent is chosen.
func NewHierarchyState(projects []ProjectNode, categories []CategoryNode) HierarchyState {
	s := HierarchyState{
		Projects:     projects,
		CategoryTree: categories,
	}
	s.Levels[0] = CategoryLevel{
		Status:  LevelReady,
		Options: categoryRootOptions(categories),
	}
	return s
}

func categoryRootOptions(categories []CategoryNode) []Option {
	opts := make([]Option, 0, len(categories))
	for _, c := range categories {
		opts = append(opts, Option{ID: c.ID, Name: c.Name})
	}
	return opts
}

// Apply feeds one event into the cascade and returns the next state plus
// the side effects the caller must run. The receiver is not mutated.
func (s HierarchyState) Apply(ev Event) (HierarchyState, []Effect) {
	switch e := ev.(type) {
	case SelectProject:
		return s.selectProject(e.ID)
	case SelectSite:
		return s.selectSite(e.ID)
	case SelectWing:
		return s.selectWing(e.ID)
	case SelectCategoryLevel:
		return s.selectCategoryLevel(e.Level, e.ID)
	case CategoryChildrenLoaded:
		return s.categoryChildrenLoaded(e)
	case CategoryChildrenFailed:
		return s.categoryChildrenFailed(e)
	case FloorsLoaded:
		return s.floorsLoaded(e)
	case FloorsFailed:
		return s.floorsFailed(e)
	}
	return s, nil
}

func (s HierarchyState) selectProject(id string) (HierarchyState, []Effect) {
	s.ProjectID = id
	s.SiteID = ""
	s.WingID = ""
	s.SiteOptions = nil
	s.WingOptions = nil

	for _, p := range s.Projects {
		if p.ID != id {
			continue
		}
		opts := make([]Option, 0, len(p.Sites))
		for _, site := range p.Sites {
			opts = append(opts, Option{ID: site.ID, Name: site.Name})
		}
		s.SiteOptions = opts
		return s, nil
	}
	return s, []Effect{Notify{Kind: "error", Message: "Selected project is not available"}}
}

func (s HierarchyState) selectSite(id string) (HierarchyState, []Effect) {
	s.SiteID = id
	s.WingID = ""
	s.WingOptions = nil

	for _, p := range s.Projects {
		if p.ID != s.ProjectID {
			continue
		}
		for _, site := range p.Sites {
			if site.ID != id {
				continue
			}
			opts := make([]Option, 0, len(site.Wings))
			for _, w := range site.Wings {
				opts = append(opts, Option{ID: w.ID, Name: w.Name})
			}
			s.WingOptions = opts
			return s, nil
		}
	}
	return s, []Effect{Notify{Kind: "error", Message: "Selected site does not belong to the current project"}}
}

func (s HierarchyState) selectWing(id string) (HierarchyState, []Effect) {
	s.WingID = id
	s.Floors = nil
	s.NoFloors = false
	s.FloorGeneration++
	// The category path is orthogonal to the location axis and stays as-is.
	return s, []Effect{FetchFloors{WingID: id, Generation: s.FloorGeneration}}
}

func (s HierarchyState) floorsLoaded(e FloorsLoaded) (HierarchyState, []Effect) {
	if e.Generation != s.FloorGeneration {
		return s, nil
	}
	s.Floors = e.Floors
	s.NoFloors = len(e.Floors) == 0
	if s.NoFloors {
		return s, []Effect{Notify{Kind: "info", Message: "No floors available for this wing"}}
	}
	return s, nil
}

func (s HierarchyState) floorsFailed(e FloorsFailed) (HierarchyState, []Effect) {
	if e.Generation != s.FloorGeneration {
		return s, nil
	}
	s.Floors = nil
	s.NoFloors = false
	msg := "Could not load floors for the selected wing"
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return s, []Effect{Notify{Kind: "error", Message: msg}}
}

func (s HierarchyState) selectCategoryLevel(level int, id string) (HierarchyState, []Effect) {
	if level < 1 || level > CategoryDepth {
		return s, nil
	}
	idx := level - 1
	if s.Levels[idx].Status != LevelReady && s.Levels[idx].Status != LevelSelected {
		return s, nil
	}

	s.Levels[idx].SelectedID = id
	s.Levels[idx].Status = LevelSelected

	// Everything deeper than the reselected level is invalidated.
	for i := level; i < CategoryDepth; i++ {
		gen := s.Levels[i].Generation
		s.Levels[i] = CategoryLevel{Generation: gen}
	}

	if level == CategoryDepth {
		return s, nil
	}

	// Level 2 children are preloaded on the category tree; deeper levels
	// are fetched on demand.
	if level == 1 {
		for _, c := range s.CategoryTree {
			if c.ID == id {
				s.Levels[1] = CategoryLevel{
					Status:     LevelReady,
					Options:    c.Children,
					Generation: s.Levels[1].Generation,
				}
				return s, nil
			}
		}
		return s, []Effect{Notify{Kind: "error", Message: "Selected work category is not available"}}
	}

	s.Levels[level].Generation++
	s.Levels[level].Status = LevelLoading
	return s, []Effect{FetchSubCategories{
		ParentID:   id,
		Level:      level + 1,
		Generation: s.Levels[level].Generation,
	}}
}

func (s HierarchyState) categoryChildrenLoaded(e CategoryChildrenLoaded) (HierarchyState, []Effect) {
	if e.Level < 3 || e.Level > CategoryDepth {
		return s, nil
	}
	idx := e.Level - 1
	// A result for a superseded request is dropped; the latest request wins.
	if s.Levels[idx].Status != LevelLoading || s.Levels[idx].Generation != e.Generation {
		return s, nil
	}
	s.Levels[idx].Status = LevelReady
	s.Levels[idx].Options = e.Options
	return s, nil
}

func (s HierarchyState) categoryChildrenFailed(e CategoryChildrenFailed) (HierarchyState, []Effect) {
	if e.Level < 3 || e.Level > CategoryDepth {
		return s, nil
	}
	idx := e.Level - 1
	if s.Levels[idx].Status != LevelLoading || s.Levels[idx].Generation != e.Generation {
		return s, nil
	}
	s.Levels[idx].Status = LevelReady
	s.Levels[idx].Options = nil
	msg := fmt.Sprintf("Could not load level %d work categories", e.Level)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return s, []Effect{Notify{Kind: "error", Message: msg}}
}

// CategoryPath is the flat view of the selected category ids, as carried on
// the draft and the wire payload.
type CategoryPath struct {
	LevelOneID   string `json:"level_one_id"`
	LevelTwoID   string `json:"level_two_id,omitempty"`
	LevelThreeID string `json:"level_three_id,omitempty"`
	LevelFourID  string `json:"level_four_id,omitempty"`
	LevelFiveID  string `json:"level_five_id,omitempty"`
}

// CategoryPath flattens the selected level ids for binding onto a draft.
func (s HierarchyState) CategoryPath() CategoryPath {
	return CategoryPath{
		LevelOneID:   s.Levels[0].SelectedID,
		LevelTwoID:   s.Levels[1].SelectedID,
		LevelThreeID: s.Levels[2].SelectedID,
		LevelFourID:  s.Levels[3].SelectedID,
		LevelFiveID:  s.Levels[4].SelectedID,
	}
}

// IDs returns the category path as an ordered slice, level 1 first.
func (p CategoryPath) IDs() [CategoryDepth]string {
	return [CategoryDepth]string{p.LevelOneID, p.LevelTwoID, p.LevelThreeID, p.LevelFourID, p.LevelFiveID}
}
