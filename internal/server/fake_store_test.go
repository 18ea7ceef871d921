package server

import (
	"context"
	"time"

	"github.com/claude/volumeopt/internal/storage"
	"github.com/google/uuid"
)

// fakeStore is an in-memory Store for handler tests.
type fakeStore struct {
	users      map[uuid.UUID]storage.User
	keys       map[uuid.UUID]storage.APIKey
	history    []storage.HistoryEntry
	usageToday map[uuid.UUID]int
	usageErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      map[uuid.UUID]storage.User{},
		keys:       map[uuid.UUID]storage.APIKey{},
		usageToday: map[uuid.UUID]int{},
	}
}

func (f *fakeStore) addUser(email string, tier storage.Tier) storage.User {
	u := storage.User{
		ID:        uuid.New(),
		Email:     email,
		Tier:      tier,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeStore) addKey(userID uuid.UUID, key string) storage.APIKey {
	k := storage.APIKey{ID: uuid.New(), Key: key, Name: "test", UserID: userID, IsActive: true, CreatedAt: time.Now()}
	f.keys[k.ID] = k
	return k
}

func (f *fakeStore) CreateUser(ctx context.Context, email, hashedPassword string) (storage.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return storage.User{}, storage.ErrEmailTaken
		}
	}
	u := f.addUser(email, storage.TierFree)
	u.HashedPassword = hashedPassword
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (storage.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return storage.User{}, storage.ErrNotFound
}

func (f *fakeStore) GetUserByID(ctx context.Context, id uuid.UUID) (storage.User, error) {
	u, ok := f.users[id]
	if !ok {
		return storage.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (f *fakeStore) UpdateUserTier(ctx context.Context, id uuid.UUID, tier storage.Tier) error {
	u, ok := f.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	u.Tier = tier
	f.users[id] = u
	return nil
}

func (f *fakeStore) CreateAPIKey(ctx context.Context, userID uuid.UUID, name, key string) (storage.APIKey, error) {
	k := storage.APIKey{ID: uuid.New(), Key: key, Name: name, UserID: userID, IsActive: true, CreatedAt: time.Now()}
	f.keys[k.ID] = k
	return k, nil
}

func (f *fakeStore) ListAPIKeys(ctx context.Context, userID uuid.UUID) ([]storage.APIKey, error) {
	out := []storage.APIKey{}
	for _, k := range f.keys {
		if k.UserID == userID {
			out = append(out, k)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteAPIKey(ctx context.Context, userID, keyID uuid.UUID) error {
	k, ok := f.keys[keyID]
	if !ok || k.UserID != userID {
		return storage.ErrNotFound
	}
	delete(f.keys, keyID)
	return nil
}

func (f *fakeStore) GetUserByAPIKey(ctx context.Context, key string) (storage.User, error) {
	for _, k := range f.keys {
		if k.Key == key && k.IsActive {
			u, ok := f.users[k.UserID]
			if !ok || !u.IsActive {
				return storage.User{}, storage.ErrNotFound
			}
			return u, nil
		}
	}
	return storage.User{}, storage.ErrNotFound
}

func (f *fakeStore) InsertHistory(ctx context.Context, e storage.HistoryEntry) (uuid.UUID, error) {
	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	f.history = append(f.history, e)
	return e.ID, nil
}

func (f *fakeStore) QueryHistory(ctx context.Context, userID uuid.UUID, muscleGroup string, limit int) ([]storage.HistoryEntry, error) {
	out := []storage.HistoryEntry{}
	for i := len(f.history) - 1; i >= 0 && len(out) < limit; i-- {
		e := f.history[i]
		if e.UserID != userID {
			continue
		}
		if muscleGroup != "" && string(e.MuscleGroup) != muscleGroup {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeStore) UserAnalytics(ctx context.Context, userID uuid.UUID) (storage.Analytics, error) {
	a := storage.Analytics{
		MuscleGroupsTracked: []string{},
		AverageWeeklyVolume: map[string]float64{},
		ProgressTrend:       map[string]int{"progressing": 0, "stagnant": 0},
		RecentHistory:       []storage.HistoryEntry{},
	}
	for _, e := range f.history {
		if e.UserID != userID {
			continue
		}
		a.TotalLogged++
		if e.Progress {
			a.ProgressTrend["progressing"]++
		} else {
			a.ProgressTrend["stagnant"]++
		}
	}
	return a, nil
}

func (f *fakeStore) CountUsageToday(ctx context.Context, userID uuid.UUID) (int, error) {
	if f.usageErr != nil {
		return 0, f.usageErr
	}
	return f.usageToday[userID], nil
}

func (f *fakeStore) LogUsage(ctx context.Context, userID uuid.UUID, endpoint string) error {
	f.usageToday[userID]++
	return nil
}

func (f *fakeStore) SystemStats(ctx context.Context) (storage.AdminStats, error) {
	stats := storage.AdminStats{UsersByTier: map[string]int{}}
	for _, u := range f.users {
		stats.TotalUsers++
		stats.UsersByTier[string(u.Tier)]++
	}
	stats.TotalHistoryEntries = len(f.history)
	return stats, nil
}
