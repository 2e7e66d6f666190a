package shareholder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestApplyStatus_ApprovedAtFollowsTarget(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	s := &Shareholder{Status: StatusPending}

	s.ApplyStatus(StatusApproved, now)
	require.Equal(t, StatusApproved, s.Status)
	require.NotNil(t, s.ApprovedAt)
	require.True(t, s.ApprovedAt.Equal(now))

	s.ApplyStatus(StatusRejected, now.Add(time.Hour))
	require.Equal(t, StatusRejected, s.Status)
	require.Nil(t, s.ApprovedAt)

	// rejected -> approved is allowed and stamps a fresh time
	later := now.Add(48 * time.Hour)
	s.ApplyStatus(StatusApproved, later)
	require.True(t, s.ApprovedAt.Equal(later))

	s.ApplyStatus(StatusPending, later)
	require.Nil(t, s.ApprovedAt)
}

func TestCanAuthenticate(t *testing.T) {
	cases := []struct {
		role   Role
		status Status
		want   bool
	}{
		{RoleDriver, StatusPending, false},
		{RoleDriver, StatusRejected, false},
		{RoleDriver, StatusApproved, true},
		{RoleAdmin, StatusPending, true},
		{RoleAdmin, StatusRejected, true},
	}
	for _, c := range cases {
		s := &Shareholder{Role: c.role, Status: c.status}
		require.Equalf(t, c.want, s.CanAuthenticate(), "role=%s status=%s", c.role, c.status)
	}
}

func TestOwnershipPercent_FixedDenominator(t *testing.T) {
	s := &Shareholder{NumShares: 25}
	require.Equal(t, "2.5", s.OwnershipPercent().String())

	s.NumShares = 1000
	require.Equal(t, "100", s.OwnershipPercent().String())
}

func TestRoles(t *testing.T) {
	require.True(t, RoleShopsHotels.Registrable())
	require.False(t, RoleAdmin.Registrable())
	require.True(t, RoleAdmin.Valid())
	require.False(t, Role("PILOT").Valid())
	require.False(t, Status("ACTIVE").Valid())
}
