package service

import (
	"context"
	"testing"
	"time"

	dom "fieldmate/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func newBusinessService() (*BusinessService, *fakeMembers, *recorder) {
	members := newFakeMembers()
	members.members[1] = dom.Member{ID: 1, CompanyID: 10, Name: "Kim"}
	members.members[2] = dom.Member{ID: 2, CompanyID: 10, Name: "Park"}
	members.members[3] = dom.Member{ID: 3, CompanyID: 20, Name: "Lee"}
	clients := newFakeClients(dom.Client{ID: 5, CompanyID: 10, Name: "Acme"})
	rec := &recorder{}
	return NewBusinessService(newFakeBusinesses(members), clients, members, rec), members, rec
}

func TestBusinessCreate(t *testing.T) {
	s, _, rec := newBusinessService()
	ctx := context.Background()

	b, err := s.Create(ctx, staff, 5, BusinessInput{
		Name: "Install", Revenue: 1000,
		StartDate: day("2026-01-01"), EndDate: day("2026-03-01"),
		MemberIDs: []int64{1, 2, 2},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), b.CompanyID)
	assert.Equal(t, []int64{1, 2}, b.MemberIDs)
	assert.Equal(t, []dom.EventKind{dom.EventBusinessCreated}, rec.kinds())

	_, err = s.Create(ctx, staff, 5, BusinessInput{Name: "Bad", StartDate: day("2026-03-01"), EndDate: day("2026-01-01")})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = s.Create(ctx, staff, 5, BusinessInput{Name: "X", StartDate: day("2026-01-01"), EndDate: day("2026-01-01"), MemberIDs: []int64{3}})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = s.Create(ctx, other, 5, BusinessInput{Name: "X", StartDate: day("2026-01-01"), EndDate: day("2026-01-01")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBusinessMembersAndUpdate(t *testing.T) {
	s, _, _ := newBusinessService()
	ctx := context.Background()

	b, err := s.Create(ctx, staff, 5, BusinessInput{Name: "Install", StartDate: day("2026-01-01"), EndDate: day("2026-02-01")})
	require.NoError(t, err)

	members, err := s.SetMembers(ctx, staff, b.ID, []int64{2})
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Park", members[0].Name)

	_, err = s.SetMembers(ctx, staff, b.ID, []int64{2, 3})
	assert.ErrorIs(t, err, ErrInvalidInput)

	end := day("2025-12-01")
	_, err = s.Update(ctx, staff, b.ID, BusinessPatch{EndDate: &end})
	assert.ErrorIs(t, err, ErrInvalidInput)

	name := "Maintenance"
	b, err = s.Update(ctx, staff, b.ID, BusinessPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Maintenance", b.Name)

	list, err := s.ListByClient(ctx, staff, 5)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, s.Delete(ctx, staff, b.ID))
	_, err = s.Get(ctx, staff, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
