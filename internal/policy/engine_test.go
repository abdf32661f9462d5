package policy

import (
	"testing"

	"github.com/ignite/delivery-monitor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const systemAppID = int64(99)

func siteAdmin() *domain.Admin {
	return &domain.Admin{ID: 1, Name: "root", SiteAdmin: true}
}

func appAdmin(apps ...int64) *domain.Admin {
	return &domain.Admin{ID: 2, Name: "member", TeamID: 7, AppIDs: apps}
}

func allKinds() []EntityKind {
	return []EntityKind{KindApp, KindDelivery, KindDenyList, KindAdmin, KindTeam}
}

func TestScope_NilActor_Unauthorized(t *testing.T) {
	e := NewEngine(systemAppID)
	for _, kind := range allKinds() {
		_, err := e.Scope(nil, kind)
		assert.ErrorIs(t, err, ErrUnauthorized, "kind %s", kind)
	}
}

func TestScope_SiteAdmin_Unrestricted(t *testing.T) {
	e := NewEngine(systemAppID)
	for _, kind := range allKinds() {
		s, err := e.Scope(siteAdmin(), kind)
		require.NoError(t, err, "kind %s", kind)
		assert.True(t, s.All, "kind %s", kind)
	}
}

func TestScope_Idempotent(t *testing.T) {
	e := NewEngine(systemAppID)
	actor := appAdmin(1, 2)
	for _, kind := range []EntityKind{KindApp, KindDelivery, KindDenyList, KindAdmin} {
		first, err := e.Scope(actor, kind)
		require.NoError(t, err)
		second, err := e.Scope(actor, kind)
		require.NoError(t, err)
		assert.Equal(t, first, second, "kind %s", kind)
	}
}

func TestScope_AppKind_IncludesSystemApp(t *testing.T) {
	e := NewEngine(systemAppID)
	s, err := e.Scope(appAdmin(1), KindApp)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, systemAppID}, s.AppIDs)
}

func TestScope_AppKind_SystemAppNotDuplicated(t *testing.T) {
	e := NewEngine(systemAppID)
	s, err := e.Scope(appAdmin(1, systemAppID), KindApp)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, systemAppID}, s.AppIDs)
}

func TestScope_DeliveryKind_MembershipOnly(t *testing.T) {
	e := NewEngine(systemAppID)
	s, err := e.Scope(appAdmin(3, 4), KindDelivery)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{3, 4}, s.AppIDs)
	assert.False(t, s.All)
}

func TestScope_DenyListKind_IncludesGlobal(t *testing.T) {
	e := NewEngine(systemAppID)
	s, err := e.Scope(appAdmin(3), KindDenyList)
	require.NoError(t, err)
	assert.True(t, s.IncludeGlobal)
	assert.ElementsMatch(t, []int64{3}, s.AppIDs)
}

func TestScope_AdminKind_SelfOnly(t *testing.T) {
	e := NewEngine(systemAppID)
	actor := appAdmin(3)
	s, err := e.Scope(actor, KindAdmin)
	require.NoError(t, err)
	assert.Equal(t, actor.ID, s.AdminID)
	assert.False(t, s.All)
}

func TestScope_TeamKind_NonSiteAdmin_Unauthorized(t *testing.T) {
	e := NewEngine(systemAppID)
	_, err := e.Scope(appAdmin(3), KindTeam)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// A site admin's scope must admit every row any other actor can see.
func TestScope_SiteAdminSupersetOfEveryActor(t *testing.T) {
	e := NewEngine(systemAppID)
	site, err := e.Scope(siteAdmin(), KindDelivery)
	require.NoError(t, err)
	member, err := e.Scope(appAdmin(1, 2, 3), KindDelivery)
	require.NoError(t, err)

	assert.True(t, site.All)
	assert.False(t, member.All)
	assert.NotEmpty(t, member.AppIDs)
}
