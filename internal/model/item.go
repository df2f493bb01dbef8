package model

// ItemId identifies a member within an item category. Uniqueness is
// per-category, not global.
type ItemId uint32

// SetType tags an item category as the task set (B_Set) or a resource
// set (E_Set).
type SetType string

const (
	BSet SetType = "b_set"
	ESet SetType = "e_set"
)

// Member is one enumerated element of an item category.
type Member struct {
	ID     ItemId           `json:"id"`
	Fields map[string]Value `json:"fields"`
}

// Item is a category: either the task set or one resource set.
type Item struct {
	Name        string                 `json:"name"`
	ItemSetType SetType                `json:"item_set_type"`
	Members     []Member               `json:"members"`
	Schema      map[string]FieldSchema `json:"schema"`
}

// FindMember does a linear scan for a member by id, the behavior
// specified for member lookup (a legal, behavior-preserving
// optimization would add an id->index side table built from a
// snapshot; this implementation keeps the straightforward scan since
// category sizes here are small).
func (it *Item) FindMember(id ItemId) (*Member, bool) {
	for i := range it.Members {
		if it.Members[i].ID == id {
			return &it.Members[i], true
		}
	}
	return nil, false
}

// ProblemData is the immutable snapshot of item categories for the
// lifetime of one solve.
type ProblemData struct {
	ItemCategories map[string]Item `json:"item_categories"`
}

// Clone returns a deep copy, used to hand solvers a private snapshot
// that outlives the store's read lock.
func (p ProblemData) Clone() ProblemData {
	out := ProblemData{ItemCategories: make(map[string]Item, len(p.ItemCategories))}
	for name, item := range p.ItemCategories {
		members := make([]Member, len(item.Members))
		for i, m := range item.Members {
			fields := make(map[string]Value, len(m.Fields))
			for k, v := range m.Fields {
				fields[k] = v
			}
			members[i] = Member{ID: m.ID, Fields: fields}
		}
		schema := make(map[string]FieldSchema, len(item.Schema))
		for k, v := range item.Schema {
			schema[k] = v
		}
		out.ItemCategories[name] = Item{
			Name:        item.Name,
			ItemSetType: item.ItemSetType,
			Members:     members,
			Schema:      schema,
		}
	}
	return out
}

// Assignment binds one task member to one member per named resource
// category.
type Assignment struct {
	TaskID       ItemId           `json:"task_id"`
	TaskItemName string           `json:"task_item_name"`
	Resources    map[string]ItemId `json:"resources"`
}

// Schedule is an ordered collection of assignments; order only matters
// insofar as the optimizer mutates positions by index.
type Schedule struct {
	Assignments []Assignment `json:"assignments"`
}

// Clone deep-copies a schedule, used by the neighborhood generator so
// each candidate move starts from an independent copy.
func (s Schedule) Clone() Schedule {
	out := Schedule{Assignments: make([]Assignment, len(s.Assignments))}
	for i, a := range s.Assignments {
		res := make(map[string]ItemId, len(a.Resources))
		for k, v := range a.Resources {
			res[k] = v
		}
		out.Assignments[i] = Assignment{TaskID: a.TaskID, TaskItemName: a.TaskItemName, Resources: res}
	}
	return out
}

func (s Schedule) Len() int { return len(s.Assignments) }
