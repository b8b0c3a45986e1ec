package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"hfp-go-api/internal/engine"
	"hfp-go-api/internal/models"
)

var (
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrEntryNotFound    = errors.New("cash flow entry not found")
)

// ScenarioStore holds named projection configs. Recurring cash-flow entries
// are addressed by their generated id, never by list position, so edits stay
// stable under reordering and deletion. The in-memory map is authoritative;
// Firestore, when configured, is a write-through copy that survives restarts.
type ScenarioStore struct {
	mu              sync.RWMutex
	scenarios       map[string]*models.Scenario
	firestoreClient *firestore.Client
}

func NewScenarioStore(firestoreClient *firestore.Client) *ScenarioStore {
	return &ScenarioStore{
		scenarios:       make(map[string]*models.Scenario),
		firestoreClient: firestoreClient,
	}
}

// Create validates and stores a new scenario. Entries without an id get one.
func (s *ScenarioStore) Create(ctx context.Context, name string, cfg models.ProjectionConfig) (*models.Scenario, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: scenario name is required", engine.ErrInvalidConfig)
	}
	if err := engine.Validate(cfg); err != nil {
		return nil, err
	}

	for i := range cfg.ExtraCashFlowEntries {
		if cfg.ExtraCashFlowEntries[i].ID == "" {
			cfg.ExtraCashFlowEntries[i].ID = uuid.NewString()
		}
	}

	now := time.Now()
	scenario := &models.Scenario{
		ID:        uuid.NewString(),
		Name:      name,
		Config:    cfg,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.scenarios[scenario.ID] = scenario
	s.mu.Unlock()

	s.persist(ctx, scenario)
	return copyScenario(scenario), nil
}

// Get returns a scenario by id.
func (s *ScenarioStore) Get(ctx context.Context, id string) (*models.Scenario, error) {
	s.mu.RLock()
	scenario, ok := s.scenarios[id]
	s.mu.RUnlock()
	if ok {
		return copyScenario(scenario), nil
	}

	// Fall through to Firestore after a restart.
	if s.firestoreClient != nil {
		doc, err := s.firestoreClient.Collection("scenarios").Doc(id).Get(ctx)
		if err == nil {
			var loaded models.Scenario
			if err := doc.DataTo(&loaded); err == nil {
				s.mu.Lock()
				s.scenarios[loaded.ID] = &loaded
				s.mu.Unlock()
				return copyScenario(&loaded), nil
			}
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrScenarioNotFound, id)
}

// List returns all scenarios sorted by creation time.
func (s *ScenarioStore) List(ctx context.Context) []*models.Scenario {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Scenario, 0, len(s.scenarios))
	for _, scenario := range s.scenarios {
		out = append(out, copyScenario(scenario))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// Delete removes a scenario by id.
func (s *ScenarioStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	_, ok := s.scenarios[id]
	delete(s.scenarios, id)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrScenarioNotFound, id)
	}
	if s.firestoreClient != nil {
		if _, err := s.firestoreClient.Collection("scenarios").Doc(id).Delete(ctx); err != nil {
			return err
		}
	}
	return nil
}

// AddEntry appends a recurring cash-flow entry and returns it with its
// generated id.
func (s *ScenarioStore) AddEntry(ctx context.Context, scenarioID string, entry models.CashFlowEntry) (*models.CashFlowEntry, error) {
	if err := validateEntry(entry); err != nil {
		return nil, err
	}
	entry.ID = uuid.NewString()

	s.mu.Lock()
	scenario, ok := s.scenarios[scenarioID]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrScenarioNotFound, scenarioID)
	}
	scenario.Config.ExtraCashFlowEntries = append(scenario.Config.ExtraCashFlowEntries, entry)
	scenario.UpdatedAt = time.Now()
	snapshot := copyScenario(scenario)
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return &entry, nil
}

// UpdateEntry replaces the description and amount of an entry by id.
func (s *ScenarioStore) UpdateEntry(ctx context.Context, scenarioID, entryID string, entry models.CashFlowEntry) (*models.CashFlowEntry, error) {
	if err := validateEntry(entry); err != nil {
		return nil, err
	}

	s.mu.Lock()
	scenario, ok := s.scenarios[scenarioID]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrScenarioNotFound, scenarioID)
	}

	var updated *models.CashFlowEntry
	for i := range scenario.Config.ExtraCashFlowEntries {
		if scenario.Config.ExtraCashFlowEntries[i].ID == entryID {
			scenario.Config.ExtraCashFlowEntries[i].Description = entry.Description
			scenario.Config.ExtraCashFlowEntries[i].AmountPerMonth = entry.AmountPerMonth
			e := scenario.Config.ExtraCashFlowEntries[i]
			updated = &e
			break
		}
	}
	if updated == nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, entryID)
	}
	scenario.UpdatedAt = time.Now()
	snapshot := copyScenario(scenario)
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return updated, nil
}

// RemoveEntry deletes an entry by id, preserving the order of the rest.
func (s *ScenarioStore) RemoveEntry(ctx context.Context, scenarioID, entryID string) error {
	s.mu.Lock()
	scenario, ok := s.scenarios[scenarioID]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrScenarioNotFound, scenarioID)
	}

	entries := scenario.Config.ExtraCashFlowEntries
	idx := -1
	for i := range entries {
		if entries[i].ID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrEntryNotFound, entryID)
	}
	scenario.Config.ExtraCashFlowEntries = append(entries[:idx], entries[idx+1:]...)
	scenario.UpdatedAt = time.Now()
	snapshot := copyScenario(scenario)
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return nil
}

func (s *ScenarioStore) persist(ctx context.Context, scenario *models.Scenario) {
	if s.firestoreClient == nil {
		return
	}
	// Persistence is best effort; the in-memory copy is already updated.
	s.firestoreClient.Collection("scenarios").Doc(scenario.ID).Set(ctx, scenario)
}

func validateEntry(e models.CashFlowEntry) error {
	if e.Description == "" {
		return fmt.Errorf("%w: description is required", engine.ErrMalformedEntry)
	}
	if math.IsNaN(e.AmountPerMonth) || math.IsInf(e.AmountPerMonth, 0) {
		return fmt.Errorf("%w: %q amount is not a finite number", engine.ErrMalformedEntry, e.Description)
	}
	return nil
}

func copyScenario(s *models.Scenario) *models.Scenario {
	out := *s
	out.Config.ExtraCashFlowEntries = append([]models.CashFlowEntry(nil), s.Config.ExtraCashFlowEntries...)
	return &out
}
