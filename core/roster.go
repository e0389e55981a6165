package core

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// A Participant is a team taking part in the tournament.
// Participants are never mutated after their creation.
type Participant struct {
	// Random UUID, unique over the lifetime of the tournament
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewParticipant(name string) Participant {
	return Participant{ID: uuid.NewString(), Name: name}
}

func (p Participant) String() string {
	return p.Name
}

// Returns true when both are empty or both hold the same participant
func sameParticipant(a, b *Participant) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// A Roster collects the participants before the tournament starts.
type Roster struct {
	participants []Participant
	settings     Settings
}

func NewRoster(settings Settings) *Roster {
	return &Roster{
		participants: make([]Participant, 0, settings.MaxParticipants),
		settings:     settings,
	}
}

// Add registers a new participant under the trimmed name.
// Names that are empty after trimming are ignored and return
// the zero Participant.
func (r *Roster) Add(name string) (Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Participant{}, nil
	}
	if len(r.participants) >= r.settings.MaxParticipants {
		return Participant{}, ErrTooManyParticipants
	}

	participant := NewParticipant(name)
	r.participants = append(r.participants, participant)
	return participant, nil
}

// Remove drops the participant with the given id.
func (r *Roster) Remove(id string) error {
	i := slices.IndexFunc(r.participants, func(p Participant) bool { return p.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownParticipant, id)
	}
	r.participants = slices.Delete(r.participants, i, i+1)
	return nil
}

func (r *Roster) Len() int {
	return len(r.participants)
}

// Returns a copy of the registered participants in registration order
func (r *Roster) Participants() []Participant {
	return slices.Clone(r.participants)
}

func (r *Roster) Validate() error {
	return ValidateRoster(r.participants, r.settings)
}

// ValidateRoster checks the participant count against the
// settings' bounds and rejects repeated ids.
func ValidateRoster(participants []Participant, settings Settings) error {
	n := len(participants)
	if n < settings.MinParticipants {
		return fmt.Errorf("%w: %d of %d", ErrTooFewParticipants, n, settings.MinParticipants)
	}
	if n > settings.MaxParticipants {
		return fmt.Errorf("%w: %d of %d", ErrTooManyParticipants, n, settings.MaxParticipants)
	}

	seen := make(map[string]struct{}, n)
	for _, p := range participants {
		if _, ok := seen[p.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateParticipant, p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	return nil
}
