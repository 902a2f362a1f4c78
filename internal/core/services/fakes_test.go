package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"bandmate/internal/adapters/persistence/models"
	"bandmate/internal/core/domain"
)

// In-memory repository fakes. They reproduce the error translation the
// gorm-backed repositories perform so services see the same contract.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[uint]*models.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return domain.ErrEmailInUse
		}
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == strings.ToLower(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, offset, limit int) ([]*models.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, int64(len(f.users)), nil
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == strings.ToLower(email) {
			return true, nil
		}
	}
	return false, nil
}

type fakeRefreshTokenRepo struct {
	mu     sync.Mutex
	nextID uint
	tokens map[uint]*models.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{nextID: 1, tokens: map[uint]*models.RefreshToken{}}
}

func (f *fakeRefreshTokenRepo) Create(_ context.Context, token *models.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	token.ID = f.nextID
	f.nextID++
	token.CreatedAt = time.Now()
	cp := *token
	f.tokens[token.ID] = &cp
	return nil
}

func (f *fakeRefreshTokenRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tokens {
		if t.TokenHash == tokenHash && t.RevokedAt == nil {
			cp := *t
			return &cp, nil
		}
	}
	return nil, domain.ErrInvalidToken
}

func (f *fakeRefreshTokenRepo) Rotate(_ context.Context, oldID uint, replacement *models.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	old, ok := f.tokens[oldID]
	if !ok || old.RevokedAt != nil {
		return domain.ErrTokenRevoked
	}
	now := time.Now()
	old.RevokedAt = &now
	replacement.ID = f.nextID
	f.nextID++
	cp := *replacement
	f.tokens[replacement.ID] = &cp
	return nil
}

func (f *fakeRefreshTokenRepo) RevokeByTokenHash(_ context.Context, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	for _, t := range f.tokens {
		if t.TokenHash == tokenHash {
			t.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeRefreshTokenRepo) RevokeAllByUserID(_ context.Context, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	for _, t := range f.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			t.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeRefreshTokenRepo) DeleteExpired(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, t := range f.tokens {
		if t.IsExpired() {
			delete(f.tokens, id)
		}
	}
	return nil
}

func (f *fakeRefreshTokenRepo) CountActiveByUserID(_ context.Context, userID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, t := range f.tokens {
		if t.UserID == userID && t.RevokedAt == nil && !t.IsExpired() {
			count++
		}
	}
	return count, nil
}

type fakeBandRepo struct {
	mu      sync.Mutex
	nextID  uint
	bands   map[uint]*models.Band
	members map[uint][]*models.BandMember
}

func newFakeBandRepo() *fakeBandRepo {
	return &fakeBandRepo{nextID: 1, bands: map[uint]*models.Band{}, members: map[uint][]*models.BandMember{}}
}

func (f *fakeBandRepo) Create(_ context.Context, band *models.Band) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	band.ID = f.nextID
	f.nextID++
	cp := *band
	f.bands[band.ID] = &cp
	f.members[band.ID] = append(f.members[band.ID], &models.BandMember{
		BandID: band.ID,
		UserID: band.CreatedByID,
		Role:   models.BandRoleOwner,
	})
	return nil
}

func (f *fakeBandRepo) GetByID(_ context.Context, id uint) (*models.Band, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bands[id]
	if !ok {
		return nil, domain.ErrBandNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBandRepo) Update(_ context.Context, band *models.Band) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.bands[band.ID]; !ok {
		return domain.ErrBandNotFound
	}
	cp := *band
	f.bands[band.ID] = &cp
	return nil
}

func (f *fakeBandRepo) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.bands[id]; !ok {
		return domain.ErrBandNotFound
	}
	delete(f.bands, id)
	delete(f.members, id)
	return nil
}

func (f *fakeBandRepo) ListByUserID(_ context.Context, userID uint) ([]*models.Band, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Band
	for bandID, ms := range f.members {
		for _, m := range ms {
			if m.UserID == userID {
				if b, ok := f.bands[bandID]; ok {
					cp := *b
					out = append(out, &cp)
				}
			}
		}
	}
	return out, nil
}

func (f *fakeBandRepo) ListAll(_ context.Context, offset, limit int) ([]*models.Band, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Band, 0, len(f.bands))
	for _, b := range f.bands {
		cp := *b
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (f *fakeBandRepo) AddMember(_ context.Context, member *models.BandMember) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.members[member.BandID] {
		if m.UserID == member.UserID {
			return domain.ErrAlreadyMember
		}
	}
	cp := *member
	f.members[member.BandID] = append(f.members[member.BandID], &cp)
	return nil
}

func (f *fakeBandRepo) GetMember(_ context.Context, bandID, userID uint) (*models.BandMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.members[bandID] {
		if m.UserID == userID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, domain.ErrMemberNotFound
}

func (f *fakeBandRepo) ListMembers(_ context.Context, bandID uint) ([]*models.BandMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.BandMember, 0, len(f.members[bandID]))
	for _, m := range f.members[bandID] {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeBandRepo) UpdateMemberRole(_ context.Context, bandID, userID uint, role string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.members[bandID] {
		if m.UserID == userID {
			m.Role = role
			return nil
		}
	}
	return domain.ErrMemberNotFound
}

func (f *fakeBandRepo) RemoveMember(_ context.Context, bandID, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ms := f.members[bandID]
	for i, m := range ms {
		if m.UserID == userID {
			f.members[bandID] = append(ms[:i], ms[i+1:]...)
			return nil
		}
	}
	return domain.ErrMemberNotFound
}

type fakeRehearsalRepo struct {
	mu         sync.Mutex
	nextID     uint
	rehearsals map[uint]*models.Rehearsal
	attendance map[uint][]*models.Attendance
}

func newFakeRehearsalRepo() *fakeRehearsalRepo {
	return &fakeRehearsalRepo{
		nextID:     1,
		rehearsals: map[uint]*models.Rehearsal{},
		attendance: map[uint][]*models.Attendance{},
	}
}

func (f *fakeRehearsalRepo) Create(_ context.Context, rehearsal *models.Rehearsal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rehearsal.ID = f.nextID
	f.nextID++
	cp := *rehearsal
	f.rehearsals[rehearsal.ID] = &cp
	return nil
}

func (f *fakeRehearsalRepo) GetByID(_ context.Context, id uint) (*models.Rehearsal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rehearsals[id]
	if !ok {
		return nil, domain.ErrRehearsalNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRehearsalRepo) Update(_ context.Context, rehearsal *models.Rehearsal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rehearsals[rehearsal.ID]; !ok {
		return domain.ErrRehearsalNotFound
	}
	cp := *rehearsal
	f.rehearsals[rehearsal.ID] = &cp
	return nil
}

func (f *fakeRehearsalRepo) ListByBandID(_ context.Context, bandID uint, offset, limit int) ([]*models.Rehearsal, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Rehearsal
	for _, r := range f.rehearsals {
		if r.BandID == bandID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRehearsalRepo) ListUpcoming(_ context.Context, from, to time.Time) ([]*models.Rehearsal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Rehearsal
	for _, r := range f.rehearsals {
		if r.Status == models.RehearsalScheduled && r.StartsAt.After(from) && r.StartsAt.Before(to) {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRehearsalRepo) UpsertAttendance(_ context.Context, att *models.Attendance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.attendance[att.RehearsalID] {
		if a.UserID == att.UserID {
			a.Status = att.Status
			a.Comment = att.Comment
			return nil
		}
	}
	cp := *att
	f.attendance[att.RehearsalID] = append(f.attendance[att.RehearsalID], &cp)
	return nil
}

func (f *fakeRehearsalRepo) ListAttendance(_ context.Context, rehearsalID uint) ([]*models.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Attendance, 0, len(f.attendance[rehearsalID]))
	for _, a := range f.attendance[rehearsalID] {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

type fakeResourceRepo struct {
	mu        sync.Mutex
	nextID    uint
	resources map[uint]*models.Resource
}

func newFakeResourceRepo() *fakeResourceRepo {
	return &fakeResourceRepo{nextID: 1, resources: map[uint]*models.Resource{}}
}

func (f *fakeResourceRepo) Create(_ context.Context, resource *models.Resource) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	resource.ID = f.nextID
	f.nextID++
	cp := *resource
	f.resources[resource.ID] = &cp
	return nil
}

func (f *fakeResourceRepo) GetByID(_ context.Context, id uint) (*models.Resource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.resources[id]
	if !ok {
		return nil, domain.ErrResourceNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeResourceRepo) Update(_ context.Context, resource *models.Resource) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.resources[resource.ID]; !ok {
		return domain.ErrResourceNotFound
	}
	cp := *resource
	f.resources[resource.ID] = &cp
	return nil
}

func (f *fakeResourceRepo) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.resources[id]; !ok {
		return domain.ErrResourceNotFound
	}
	delete(f.resources, id)
	return nil
}

func (f *fakeResourceRepo) List(_ context.Context, offset, limit int) ([]*models.Resource, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Resource, 0, len(f.resources))
	for _, r := range f.resources {
		cp := *r
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	nextID        uint
	notifications []*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{nextID: 1}
}

func (f *fakeNotificationRepo) Create(_ context.Context, notification *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	notification.ID = f.nextID
	f.nextID++
	cp := *notification
	f.notifications = append(f.notifications, &cp)
	return nil
}

func (f *fakeNotificationRepo) CreateBatch(_ context.Context, notifications []*models.Notification) error {
	for _, n := range notifications {
		if err := f.Create(context.Background(), n); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeNotificationRepo) ListByUserID(_ context.Context, userID uint, unreadOnly bool, offset, limit int) ([]*models.Notification, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Notification
	for _, n := range f.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		cp := *n
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return domain.NotFound("notification not found")
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) ExistsForRehearsal(_ context.Context, userID, rehearsalID uint, notifType string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.UserID == userID && n.RehearsalID != nil && *n.RehearsalID == rehearsalID && n.Type == notifType {
			return true, nil
		}
	}
	return false, nil
}
