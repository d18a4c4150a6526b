package packs

import "time"

type MutationKind int

const (
	MutationCreate MutationKind = iota
	MutationPatch
	MutationDelete
)

func (k MutationKind) String() string {
	switch k {
	case MutationCreate:
		return "create"
	case MutationPatch:
		return "patch"
	case MutationDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Mutation is one typed write intent. A store applies every mutation of a
// Transaction or none of them.
type Mutation interface {
	Kind() MutationKind
	Entity() string
}

// CreatePackMutation inserts a pack. Fails with ErrPackIDTaken if the pack id exists.
type CreatePackMutation struct {
	Pack Pack
}

// CreateInstanceMutation inserts a card instance. Fails with ErrConflict if the
// instance id, or its (design, rarity, serial), already exists.
type CreateInstanceMutation struct {
	Instance CardInstance
}

// OpenInstanceMutation marks an instance opened and clears its pack. Fails with
// ErrConflict unless the instance is still inside PackID and unopened.
type OpenInstanceMutation struct {
	DesignID   string
	InstanceID string
	PackID     string
	OpenedAt   time.Time
	AddStamps  []string
}

// StampInstanceMutation appends stamps to an instance.
type StampInstanceMutation struct {
	DesignID   string
	InstanceID string
	Stamps     []string
}

// AssignInstanceMutation moves an unopened instance to a new owner.
type AssignInstanceMutation struct {
	DesignID   string
	InstanceID string
	UserID     string
	Username   string
}

// DeleteInstanceMutation removes an instance that is still inside PackID.
type DeleteInstanceMutation struct {
	DesignID   string
	InstanceID string
	PackID     string
}

// PatchPackMutation replaces the card details and owner of a pack, conditional on
// ExpectedVersion. The stored version becomes ExpectedVersion+1.
type PatchPackMutation struct {
	PackID          string
	ExpectedVersion int
	UserID          string
	Username        string
	CardDetails     []PackCard
}

// DeletePackMutation removes a pack, conditional on ExpectedVersion.
type DeletePackMutation struct {
	PackID          string
	ExpectedVersion int
}

// AdjustUserCountersMutation adds the deltas to a user's aggregate counters.
type AdjustUserCountersMutation struct {
	UserID    string
	CardDelta int
	PackDelta int
}

// PatchBestRarityMutation sets a design's best rarity. Expected is the value the
// decision was based on; a store rejects the patch with ErrConflict if it changed.
type PatchBestRarityMutation struct {
	DesignID string
	Expected *BestRarity
	Best     BestRarity
}

func (CreatePackMutation) Kind() MutationKind         { return MutationCreate }
func (CreateInstanceMutation) Kind() MutationKind     { return MutationCreate }
func (OpenInstanceMutation) Kind() MutationKind       { return MutationPatch }
func (StampInstanceMutation) Kind() MutationKind      { return MutationPatch }
func (AssignInstanceMutation) Kind() MutationKind     { return MutationPatch }
func (DeleteInstanceMutation) Kind() MutationKind     { return MutationDelete }
func (PatchPackMutation) Kind() MutationKind          { return MutationPatch }
func (DeletePackMutation) Kind() MutationKind         { return MutationDelete }
func (AdjustUserCountersMutation) Kind() MutationKind { return MutationPatch }
func (PatchBestRarityMutation) Kind() MutationKind    { return MutationPatch }

func (CreatePackMutation) Entity() string         { return "pack" }
func (CreateInstanceMutation) Entity() string     { return "card_instance" }
func (OpenInstanceMutation) Entity() string       { return "card_instance" }
func (StampInstanceMutation) Entity() string      { return "card_instance" }
func (AssignInstanceMutation) Entity() string     { return "card_instance" }
func (DeleteInstanceMutation) Entity() string     { return "card_instance" }
func (PatchPackMutation) Entity() string          { return "pack" }
func (DeletePackMutation) Entity() string         { return "pack" }
func (AdjustUserCountersMutation) Entity() string { return "user" }
func (PatchBestRarityMutation) Entity() string    { return "card_design" }

// Transaction is an ordered list of mutations committed all-or-nothing.
type Transaction struct {
	Mutations []Mutation
}

func NewTransaction() *Transaction {
	return &Transaction{}
}

func (t *Transaction) Add(m ...Mutation) *Transaction {
	t.Mutations = append(t.Mutations, m...)
	return t
}

func (t *Transaction) Len() int {
	return len(t.Mutations)
}
