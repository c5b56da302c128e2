package handlers

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/padraicbc/gridpredict/models"
	"github.com/padraicbc/gridpredict/store"
)

type predKey struct {
	userID string
	gpID   int
}

// fakeStore is an in-memory Store.
type fakeStore struct {
	mu       sync.Mutex
	pingErr  error
	gps      map[int]models.GrandPrix
	drivers  map[string]models.Driver
	preds    map[predKey]models.Prediction
	drafts   map[int]models.DraftResult
	official map[int]models.OfficialResult
	users    map[string]models.User
	adjs     []models.PointAdjustment
	scores   []models.UserScore
	leagues  map[string]models.League
	members  map[string][]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		gps:      map[int]models.GrandPrix{},
		drivers:  map[string]models.Driver{},
		preds:    map[predKey]models.Prediction{},
		drafts:   map[int]models.DraftResult{},
		official: map[int]models.OfficialResult{},
		users:    map[string]models.User{},
		leagues:  map[string]models.League{},
		members:  map[string][]string{},
	}
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

func (f *fakeStore) ListSchedule(_ context.Context, season int) ([]models.GrandPrix, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.GrandPrix
	for _, gp := range f.gps {
		if season == 0 || gp.Season == season {
			out = append(out, gp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Round < out[j].Round })
	return out, nil
}

func (f *fakeStore) GetGrandPrix(_ context.Context, id int) (*models.GrandPrix, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	gp, ok := f.gps[id]
	if !ok {
		return nil, nil
	}
	return &gp, nil
}

func (f *fakeStore) UpsertGrandPrix(_ context.Context, gp *models.GrandPrix) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gps[gp.ID] = *gp
	return nil
}

func (f *fakeStore) ListDrivers(_ context.Context, activeOnly bool) ([]models.Driver, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Driver
	for _, d := range f.drivers {
		if !activeOnly || d.IsActive {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) UpsertDriver(_ context.Context, d *models.Driver) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drivers[d.ID] = *d
	return nil
}

func (f *fakeStore) GetPrediction(_ context.Context, userID string, gpID int) (*models.Prediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.preds[predKey{userID, gpID}]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeStore) UpsertPrediction(_ context.Context, p *models.Prediction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.preds[predKey{p.UserID, p.GpID}] = *p
	return nil
}

func (f *fakeStore) ListPredictionsForGPs(_ context.Context, gpIDs []int) ([]models.Prediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Prediction
	for k, p := range f.preds {
		if slices.Contains(gpIDs, k.gpID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) ListPredictionsForUser(_ context.Context, userID string) ([]models.Prediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Prediction
	for k, p := range f.preds {
		if k.userID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GpID < out[j].GpID })
	return out, nil
}

func (f *fakeStore) GetDraftResult(_ context.Context, gpID int) (*models.DraftResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.drafts[gpID]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeStore) SaveDraftResult(_ context.Context, r *models.DraftResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drafts[r.GpID] = *r
	return nil
}

func (f *fakeStore) GetOfficialResult(_ context.Context, gpID int) (*models.OfficialResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.official[gpID]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeStore) ListOfficialResults(context.Context) ([]models.OfficialResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.OfficialResult
	for _, r := range f.official {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GpID < out[j].GpID })
	return out, nil
}

func (f *fakeStore) PublishResult(_ context.Context, gpID int, groups []models.SessionGroup,
	overrides map[string]models.ManualOverride, at time.Time) (*models.OfficialResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	draft, ok := f.drafts[gpID]
	if !ok {
		return nil, store.ErrNoDraft
	}
	r, ok := f.official[gpID]
	if !ok {
		r = models.OfficialResult{GpID: gpID}
	}
	r.Publish(draft.Picks, groups, overrides, at)
	f.official[gpID] = r
	return &r, nil
}

func (f *fakeStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListUsers(context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeStore) UpsertUser(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, existing := range f.users {
		if existing.Username == u.Username {
			existing.Password = u.Password
			existing.DisplayName = u.DisplayName
			existing.IsAdmin = u.IsAdmin
			f.users[id] = existing
			return nil
		}
	}
	f.users[u.ID] = *u
	return nil
}

func (f *fakeStore) AddPointAdjustment(_ context.Context, a *models.PointAdjustment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.adjs = append(f.adjs, *a)
	return nil
}

func (f *fakeStore) ListPointAdjustments(context.Context) ([]models.PointAdjustment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.adjs), nil
}

func (f *fakeStore) ListUserScores(_ context.Context, userID string) ([]models.UserScore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.UserScore
	for _, s := range f.scores {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateLeague(_ context.Context, l *models.League) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.leagues {
		if existing.Name == l.Name {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	f.leagues[l.ID] = *l
	f.members[l.ID] = []string{l.OwnerID}
	return nil
}

func (f *fakeStore) GetLeague(_ context.Context, id string) (*models.League, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.leagues[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (f *fakeStore) AddLeagueMember(_ context.Context, m *models.LeagueMember) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !slices.Contains(f.members[m.LeagueID], m.UserID) {
		f.members[m.LeagueID] = append(f.members[m.LeagueID], m.UserID)
	}
	return nil
}

func (f *fakeStore) ListLeagueMembers(_ context.Context, leagueID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.members[leagueID]), nil
}

type fakeRescorer struct {
	mu    sync.Mutex
	calls []int
	err   error
}

func (r *fakeRescorer) RescoreGP(_ context.Context, gpID int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, gpID)
	return 1, r.err
}
