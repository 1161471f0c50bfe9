package service

import (
	"context"
	"errors"
	"sync"

	"github.com/noah-isme/lms-ledger-api/internal/models"
)

type fakeProfiles struct {
	mu       sync.Mutex
	profiles map[string]*models.StudentProfile
	calls    []string
	err      error
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{profiles: make(map[string]*models.StudentProfile)}
}

func (f *fakeProfiles) ResolveOrCreate(_ context.Context, userID string) (*models.StudentProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, userID)
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.profiles[userID]; ok {
		return p, nil
	}
	p := &models.StudentProfile{ID: "stu-" + userID, UserID: userID}
	f.profiles[userID] = p
	return p, nil
}

type publishedEvent struct {
	eventType string
	payload   EnrollmentEvent
}

type fakeEvents struct {
	events []publishedEvent
	err    error
}

func (f *fakeEvents) Publish(_ context.Context, eventType string, payload interface{}) error {
	f.events = append(f.events, publishedEvent{eventType: eventType, payload: payload.(EnrollmentEvent)})
	return f.err
}

var errStoreDown = errors.New("connection refused")
